package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	toast := m.Toast.View()
	bodyHeight := max(0, m.Height-ChromeHeight)
	if toast != "" {
		bodyHeight = max(0, bodyHeight-lipgloss.Height(toast))
	}

	var body string
	switch {
	case m.episodes != nil:
		body = m.renderEpisodes()
	case m.Tab == TabHome:
		body = m.renderHome()
	case m.Tab == TabWatchlist:
		body = m.Saved.View()
	case m.Tab == TabDevices:
		body = m.Devices.View()
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	parts := []string{m.renderTabs(), body}
	if toast != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(m.Width, lipgloss.Right, toast))
	}
	parts = append(parts, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.Tab {
			tabs[i] = styles.ActiveTabStyle.Render(name)
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(name)
		}
	}
	logo := styles.AccentStyle.Bold(true).Render("MARQUEE") + "  "
	return lipgloss.NewStyle().MarginBottom(1).Render(logo + lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderHome() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.Rail.View(),
		"",
		m.Movies.View(),
		"",
		m.Shows.View(),
	)
}

func (m Model) renderEpisodes() string {
	ev := m.episodes
	crumb := fmt.Sprintf("%s %s Season %d", ev.show.Name, styles.ArrowRight, ev.season)
	if ev.show.SeasonCount > 0 {
		crumb += styles.DimStyle.Render(fmt.Sprintf(" of %d", ev.show.SeasonCount))
	}
	header := styles.HeadingStyle.Render(crumb)
	if ev.backdrop != "" {
		header = lipgloss.JoinVertical(lipgloss.Left, header, styles.DimStyle.Render(ev.backdrop))
	}

	if ev.loading {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			RenderSpinner(m.SpinnerFrame)+" "+styles.DimStyle.Render("Loading episodes..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, ev.grid.View())
}

func (m Model) renderFooter() string {
	var left string
	if m.Loading {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	var center string
	switch {
	case m.episodes != nil:
		center = hint("enter", "play") + "  " + hint("n/p", "season") + "  " + hint("esc", "back")
	case m.Tab == TabHome && m.Pane == PaneRail:
		center = hint("enter", "resume") + "  " + hint("x", "remove") + "  " + hint("[ ]", "scroll")
	case m.Tab == TabHome || m.Tab == TabWatchlist:
		center = hint("a", "watchlist") + "  " + hint("/", "filter")
	}

	right := hint("?", "help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(0, m.Width-leftWidth-rightWidth)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func (m Model) renderHelp() string {
	help := `
NAVIGATION                      ACTIONS
  h/j/k/l    Move                  enter  Open / resume / play
  tab        Next tab              a, m   Watchlist menu
  J/K        Next/prev section     x      Remove from Continue Watching
  [ ]        Scroll rail           /      Filter cards
  n/p        Next/prev season      r      Refresh
  esc        Back                  q      Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

func hint(keys, label string) string {
	return styles.AccentStyle.Render(keys) + styles.DimStyle.Render(" "+label)
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
