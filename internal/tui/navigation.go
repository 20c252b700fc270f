package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// openShow switches to the episodes view and starts loading the show
func (m Model) openShow(show domain.Show, season, focus int) (tea.Model, tea.Cmd) {
	if m.Metadata == nil {
		return m, m.setStatus("Metadata unavailable: cannot load episodes", true)
	}

	grid := components.NewBentoGrid()
	m.episodes = &episodesView{
		show:    show,
		season:  max(1, season),
		focus:   focus,
		loading: true,
		grid:    grid,
	}
	m.Loading = true
	m.updateLayout()
	m.applyFocus()
	return m, LoadShowCmd(m.Metadata, show.ID, m.episodes.season, focus)
}

// closeEpisodes returns to the tab the user came from
func (m *Model) closeEpisodes() {
	m.episodes = nil
	m.Loading = false
	m.applyFocus()
}

// changeSeason moves the episodes view by delta seasons within the show's range
func (m Model) changeSeason(delta int) (tea.Model, tea.Cmd) {
	ev := m.episodes
	if ev == nil || ev.loading {
		return m, nil
	}
	next := ev.season + delta
	if next < 1 || (ev.show.SeasonCount > 0 && next > ev.show.SeasonCount) {
		return m, nil
	}

	ev.season = next
	ev.loading = true
	ev.grid.SetItems(nil)
	m.Loading = true
	return m, LoadSeasonCmd(m.Metadata, ev.show, next)
}

// switchTab moves between top-level screens, wrapping at both ends
func (m *Model) switchTab(delta int) {
	n := len(tabNames)
	m.Tab = Tab((int(m.Tab) + delta + n) % n)
	m.applyFocus()
}

// cyclePane moves focus between the home sections
func (m *Model) cyclePane(delta int) {
	const panes = 3
	m.Pane = HomePane((int(m.Pane) + delta + panes) % panes)
	m.applyFocus()
}

// applyFocus gives keyboard focus to exactly one component
func (m *Model) applyFocus() {
	onHome := m.episodes == nil && m.Tab == TabHome
	m.Rail.SetFocused(onHome && m.Pane == PaneRail)
	m.Movies.SetFocused(onHome && m.Pane == PaneMovies)
	m.Shows.SetFocused(onHome && m.Pane == PaneShows)
	m.Saved.SetFocused(m.episodes == nil && m.Tab == TabWatchlist)
	if m.episodes != nil {
		m.episodes.grid.SetFocused(true)
	}
}

// focusedGrid returns the poster grid holding focus, if any
func (m *Model) focusedGrid() *components.PosterGrid {
	if m.episodes != nil {
		return nil
	}
	switch {
	case m.Tab == TabWatchlist:
		return &m.Saved
	case m.Tab == TabHome && m.Pane == PaneMovies:
		return &m.Movies
	case m.Tab == TabHome && m.Pane == PaneShows:
		return &m.Shows
	}
	return nil
}
