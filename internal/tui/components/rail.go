package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const (
	// ScrollAmount is how many cards one scroll step moves the rail
	ScrollAmount = 3

	RailHeading    = "Continue Watching"
	RailEmptyText  = "Start watching movies and TV shows to track your progress"
	railCardWidth  = 26
	railMinVisible = 1
)

// RemoveProgressMsg asks the app to drop an entry from watch progress
type RemoveProgressMsg struct {
	Key domain.Key
}

// ResumeMsg asks the app to continue a title from the rail
type ResumeMsg struct {
	Entry domain.WatchProgressEntry
}

// Rail is the horizontally scrolling continue-watching row
type Rail struct {
	items   []domain.WatchProgressEntry
	cursor  int
	offset  int // index of the first visible card
	visible int // cards that fit on screen
	limit   int // configured upper bound for visible
	width   int
	focused bool
	keys    RailKeyMap

	episodeNames map[domain.EpisodeRef]string
}

// NewRail creates a rail that shows up to visible cards at once
func NewRail(visible int) Rail {
	visible = max(railMinVisible, visible)
	return Rail{
		visible: visible,
		limit:   visible,
		keys:    DefaultRailKeyMap(),
	}
}

// SetItems replaces the rail's entries (already ordered most recent first)
func (r *Rail) SetItems(items []domain.WatchProgressEntry) {
	r.items = items
	if r.cursor >= len(items) {
		r.cursor = max(0, len(items)-1)
	}
	r.offset = min(r.offset, r.maxOffset())
	r.ensureVisible()
}

// SetWidth fits as many cards as the width allows, never more than configured
func (r *Rail) SetWidth(width int) {
	r.width = width
	fit := (width - 2) / railCardWidth // two arrow columns
	r.visible = max(railMinVisible, min(r.limit, fit))
	r.offset = min(r.offset, r.maxOffset())
	r.ensureVisible()
}

// SetEpisodeName records the name shown under a TV entry's episode label
func (r *Rail) SetEpisodeName(ref domain.EpisodeRef, name string) {
	if name == "" {
		return
	}
	if r.episodeNames == nil {
		r.episodeNames = make(map[domain.EpisodeRef]string)
	}
	r.episodeNames[ref] = name
}

// HasEpisodeName reports whether the episode's name is already known
func (r Rail) HasEpisodeName(ref domain.EpisodeRef) bool {
	_, ok := r.episodeNames[ref]
	return ok
}

func (r *Rail) SetFocused(focused bool) { r.focused = focused }
func (r Rail) IsFocused() bool          { return r.focused }
func (r Rail) Offset() int              { return r.offset }
func (r Rail) Cursor() int              { return r.cursor }
func (r Rail) Len() int                 { return len(r.items) }

// CanScrollLeft is false at the start of the rail; the left arrow is hidden then
func (r Rail) CanScrollLeft() bool { return r.offset > 0 }

// CanScrollRight reports whether cards remain past the visible window
func (r Rail) CanScrollRight() bool { return r.offset < r.maxOffset() }

// Selected returns the entry under the cursor
func (r Rail) Selected() (domain.WatchProgressEntry, bool) {
	if len(r.items) == 0 {
		return domain.WatchProgressEntry{}, false
	}
	return r.items[r.cursor], true
}

func (r Rail) maxOffset() int {
	return max(0, len(r.items)-r.visible)
}

// Scroll moves the visible window by ScrollAmount cards, clamped to the rail.
// The cursor is pulled along so it stays on screen.
func (r *Rail) Scroll(right bool) {
	if right {
		r.offset = min(r.maxOffset(), r.offset+ScrollAmount)
	} else {
		r.offset = max(0, r.offset-ScrollAmount)
	}
	if r.cursor < r.offset {
		r.cursor = r.offset
	}
	if last := r.offset + r.visible - 1; r.cursor > last {
		r.cursor = max(0, min(last, len(r.items)-1))
	}
}

func (r *Rail) ensureVisible() {
	if r.cursor < r.offset {
		r.offset = r.cursor
	}
	if r.cursor >= r.offset+r.visible {
		r.offset = r.cursor - r.visible + 1
	}
}

// Update handles key input while focused
func (r Rail) Update(msg tea.Msg) (Rail, tea.Cmd) {
	if !r.focused || len(r.items) == 0 {
		return r, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch {
	case key.Matches(keyMsg, r.keys.Left):
		if r.cursor > 0 {
			r.cursor--
			r.ensureVisible()
		}
	case key.Matches(keyMsg, r.keys.Right):
		if r.cursor < len(r.items)-1 {
			r.cursor++
			r.ensureVisible()
		}
	case key.Matches(keyMsg, r.keys.ScrollLeft):
		r.Scroll(false)
	case key.Matches(keyMsg, r.keys.ScrollRight):
		r.Scroll(true)
	case key.Matches(keyMsg, r.keys.Remove):
		entry := r.items[r.cursor]
		return r, func() tea.Msg { return RemoveProgressMsg{Key: entry.Key()} }
	case key.Matches(keyMsg, r.keys.Resume):
		entry := r.items[r.cursor]
		return r, func() tea.Msg { return ResumeMsg{Entry: entry} }
	}
	return r, nil
}

// View renders the heading and the visible window of cards
func (r Rail) View() string {
	heading := styles.HeadingStyle.Render(RailHeading)

	if len(r.items) == 0 {
		empty := styles.InactiveBorder.
			Padding(1, 4).
			Render(styles.SubtitleStyle.Render(RailEmptyText))
		return lipgloss.JoinVertical(lipgloss.Left, heading, empty)
	}

	end := min(len(r.items), r.offset+r.visible)
	cards := make([]string, 0, end-r.offset+2)

	left := " "
	if r.CanScrollLeft() {
		left = styles.AccentStyle.Render(styles.ArrowLeft)
	}
	cards = append(cards, left)

	for i := r.offset; i < end; i++ {
		cards = append(cards, r.renderCard(r.items[i], r.focused && i == r.cursor))
	}

	right := " "
	if r.CanScrollRight() {
		right = styles.AccentStyle.Render(styles.ArrowRight)
	}
	cards = append(cards, right)

	return lipgloss.JoinVertical(lipgloss.Left, heading, lipgloss.JoinHorizontal(lipgloss.Center, cards...))
}

func (r Rail) renderCard(item domain.WatchProgressEntry, selected bool) string {
	style := styles.CardStyle
	if selected {
		style = styles.SelectedCardStyle
	}
	inner := railCardWidth - style.GetHorizontalFrameSize()

	title := styles.TitleStyle.Render(Truncate(item.Title, inner))

	meta := item.EpisodeLabel()
	if meta == "" {
		meta = item.Type.Label()
	} else if ref, ok := item.EpisodeRef(); ok && r.episodeNames[ref] != "" {
		meta += " · " + r.episodeNames[ref]
	}
	lines := []string{
		title,
		styles.DimStyle.Render(Truncate(meta, inner)),
		ProgressBar(item.Progress, inner),
	}
	if selected {
		lines = append(lines, styles.AccentStyle.Render(styles.PlayChar+" resume"))
	}

	return style.Width(railCardWidth - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}
