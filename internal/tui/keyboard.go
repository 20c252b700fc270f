package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg routes keys: text input first, then global bindings, then the focused component
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	// A grid typing into its filter owns the keyboard
	if g := m.focusedGrid(); g != nil && (g.IsFilterTyping() || g.MenuOpen()) {
		var cmd tea.Cmd
		*g, cmd = g.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = true
		return m, nil
	}

	if m.episodes != nil {
		return m.handleEpisodesKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(-1)
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.refreshLocal()
		if m.Metadata == nil {
			return m, nil
		}
		m.Loading = true
		return m, tea.Batch(LoadTrendingCmd(m.Metadata), m.railEpisodesCmd())
	}

	switch m.Tab {
	case TabHome:
		switch {
		case key.Matches(msg, m.keys.NextPane):
			m.cyclePane(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevPane):
			m.cyclePane(-1)
			return m, nil
		}
		if m.Pane == PaneRail {
			var cmd tea.Cmd
			m.Rail, cmd = m.Rail.Update(msg)
			return m, cmd
		}
	case TabDevices:
		return m, nil
	}

	if g := m.focusedGrid(); g != nil {
		var cmd tea.Cmd
		*g, cmd = g.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleEpisodesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeEpisodes()
		return m, nil
	case key.Matches(msg, m.keys.NextSeason):
		return m.changeSeason(1)
	case key.Matches(msg, m.keys.PrevSeason):
		return m.changeSeason(-1)
	}

	var cmd tea.Cmd
	m.episodes.grid, cmd = m.episodes.grid.Update(msg)
	return m, cmd
}
