package components

import "github.com/charmbracelet/bubbles/key"

// RailKeyMap defines key bindings for the continue-watching rail
type RailKeyMap struct {
	Left        key.Binding
	Right       key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Remove      key.Binding
	Resume      key.Binding
}

// DefaultRailKeyMap returns the default rail key bindings
func DefaultRailKeyMap() RailKeyMap {
	return RailKeyMap{
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next"),
		),
		ScrollLeft: key.NewBinding(
			key.WithKeys("H", "["),
			key.WithHelp("[", "scroll left"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("L", "]"),
			key.WithHelp("]", "scroll right"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Resume: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "resume"),
		),
	}
}

// GridKeyMap defines key bindings for poster grids
type GridKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Home   key.Binding
	End    key.Binding
	Menu   key.Binding
	Enter  key.Binding
	Escape key.Binding
	Filter key.Binding
}

// DefaultGridKeyMap returns the default grid key bindings
func DefaultGridKeyMap() GridKeyMap {
	return GridKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "a"),
			key.WithHelp("m", "options"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
	}
}
