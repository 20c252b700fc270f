package components

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// DefaultToastDuration applies when no duration is configured
const DefaultToastDuration = 3 * time.Second

// ToastExpiredMsg is delivered when a toast's timer fires
type ToastExpiredMsg struct {
	ID int
}

// Toast is a transient notification shown in the corner of the screen
type Toast struct {
	id          int
	title       string
	description string
	isError     bool
	visible     bool
	duration    time.Duration
}

// NewToast creates a hidden toast with the given display duration
func NewToast(duration time.Duration) Toast {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return Toast{duration: duration}
}

// WatchlistToast returns the title and description for a watchlist change
func WatchlistToast(title string, added bool) (string, string) {
	if added {
		return "Added to Watchlist", fmt.Sprintf("%s has been added to your watchlist.", title)
	}
	return "Removed from Watchlist", fmt.Sprintf("%s has been removed from your watchlist.", title)
}

// Show displays a toast and returns the command that expires it.
// A newer toast supersedes an older one; stale expiry messages are ignored.
func (t *Toast) Show(title, description string, isError bool) tea.Cmd {
	t.id++
	t.title = title
	t.description = description
	t.isError = isError
	t.visible = true

	id := t.id
	return tea.Tick(t.duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

func (t Toast) Visible() bool           { return t.visible }
func (t Toast) Title() string           { return t.title }
func (t Toast) Description() string     { return t.description }
func (t Toast) Duration() time.Duration { return t.duration }

// Update hides the toast when its own expiry arrives
func (t Toast) Update(msg tea.Msg) Toast {
	if m, ok := msg.(ToastExpiredMsg); ok && m.ID == t.id {
		t.visible = false
	}
	return t
}

func (t Toast) View() string {
	if !t.visible {
		return ""
	}
	style := styles.ToastStyle
	if t.isError {
		style = style.BorderForeground(styles.Red)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ToastTitleStyle.Render(t.title),
		styles.SubtitleStyle.Render(t.description),
	)
	return style.Render(body)
}
