package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-wide key bindings
type KeyMap struct {
	NextTab    key.Binding
	PrevTab    key.Binding
	NextPane   key.Binding
	PrevPane   key.Binding
	NextSeason key.Binding
	PrevSeason key.Binding
	Refresh    key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev tab"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("J", "ctrl+n"),
			key.WithHelp("J", "next section"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("K", "ctrl+p"),
			key.WithHelp("K", "prev section"),
		),
		NextSeason: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next season"),
		),
		PrevSeason: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev season"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.NextPane, k.Refresh, k.Help, k.Quit}
}
