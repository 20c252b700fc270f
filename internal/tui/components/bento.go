package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const (
	bentoCardWidth = 40
	bentoMaxCols   = 3
	bentoOverview  = 3 // overview lines per card
)

// BentoItem is one episode tile plus the show it belongs to
type BentoItem struct {
	Episode        domain.Episode
	ShowID         int
	ShowName       string
	ShowPosterPath string
}

// Key identifies the tile by season and episode number
func (b BentoItem) Key() string {
	return fmt.Sprintf("%d-%d", b.Episode.SeasonNumber, b.Episode.EpisodeNumber)
}

// Overview returns the episode overview, or a generic line when it is blank
func (b BentoItem) Overview() string {
	if strings.TrimSpace(b.Episode.Overview) != "" {
		return b.Episode.Overview
	}
	return fmt.Sprintf("Watch episode %d of %s.", b.Episode.EpisodeNumber, b.ShowName)
}

// ImagePath prefers the episode still and falls back to the show poster
func (b BentoItem) ImagePath() (path string, isStill bool) {
	if b.Episode.StillPath != "" {
		return b.Episode.StillPath, true
	}
	return b.ShowPosterPath, false
}

// PlayEpisodeMsg asks the app to start (record) an episode
type PlayEpisodeMsg struct {
	Item BentoItem
}

// BentoGrid lays out episode tiles in up to three columns
type BentoGrid struct {
	items   []BentoItem
	cursor  int
	width   int
	focused bool
	keys    GridKeyMap
}

// NewBentoGrid creates an empty episode grid
func NewBentoGrid() BentoGrid {
	return BentoGrid{keys: DefaultGridKeyMap()}
}

func (b *BentoGrid) SetItems(items []BentoItem) {
	b.items = items
	if b.cursor >= len(items) {
		b.cursor = max(0, len(items)-1)
	}
}

func (b *BentoGrid) SetWidth(width int)      { b.width = width }
func (b *BentoGrid) SetFocused(focused bool) { b.focused = focused }
func (b BentoGrid) Len() int                 { return len(b.items) }
func (b BentoGrid) Cursor() int              { return b.cursor }

// FocusEpisode moves the cursor to the given episode number when present
func (b *BentoGrid) FocusEpisode(number int) {
	for i, item := range b.items {
		if item.Episode.EpisodeNumber == number {
			b.cursor = i
			return
		}
	}
}

// Columns follows the responsive 1/2/3 column layout
func (b BentoGrid) Columns() int {
	return max(1, min(bentoMaxCols, b.width/(bentoCardWidth+1)))
}

// Selected returns the tile under the cursor
func (b BentoGrid) Selected() (BentoItem, bool) {
	if len(b.items) == 0 {
		return BentoItem{}, false
	}
	return b.items[b.cursor], true
}

// Update handles messages
func (b BentoGrid) Update(msg tea.Msg) (BentoGrid, tea.Cmd) {
	if !b.focused || len(b.items) == 0 {
		return b, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	cols := b.Columns()
	switch {
	case key.Matches(keyMsg, b.keys.Left):
		if b.cursor > 0 {
			b.cursor--
		}
	case key.Matches(keyMsg, b.keys.Right):
		if b.cursor < len(b.items)-1 {
			b.cursor++
		}
	case key.Matches(keyMsg, b.keys.Up):
		if b.cursor-cols >= 0 {
			b.cursor -= cols
		}
	case key.Matches(keyMsg, b.keys.Down):
		if b.cursor+cols < len(b.items) {
			b.cursor += cols
		}
	case key.Matches(keyMsg, b.keys.Enter):
		item := b.items[b.cursor]
		return b, func() tea.Msg { return PlayEpisodeMsg{Item: item} }
	}
	return b, nil
}

// View renders nothing at all for an empty grid
func (b BentoGrid) View() string {
	if len(b.items) == 0 {
		return ""
	}

	cols := b.Columns()
	var rows []string
	for start := 0; start < len(b.items); start += cols {
		end := min(len(b.items), start+cols)
		tiles := make([]string, 0, cols)
		for i := start; i < end; i++ {
			tiles = append(tiles, b.renderTile(b.items[i], b.focused && i == b.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (b BentoGrid) renderTile(item BentoItem, selected bool) string {
	style := styles.CardStyle
	if selected {
		style = styles.SelectedCardStyle
	}
	inner := bentoCardWidth - style.GetHorizontalFrameSize()
	ep := item.Episode

	badge := styles.BadgeStyle.Render(fmt.Sprintf("Episode %d", ep.EpisodeNumber))

	meta := []string{styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", ep.VoteAverage))}
	if !ep.AirDate.IsZero() {
		meta = append(meta, styles.SubtitleStyle.Render(ep.AirDate.Format("Jan 2, 2006")))
	}

	overview := lipgloss.NewStyle().Width(inner).Render(item.Overview())
	overviewLines := strings.Split(overview, "\n")
	if len(overviewLines) > bentoOverview {
		overviewLines = overviewLines[:bentoOverview]
		overviewLines[bentoOverview-1] = Truncate(strings.TrimRight(overviewLines[bentoOverview-1], " ")+" ...", inner)
	}

	lines := []string{
		badge,
		styles.TitleStyle.Render(Truncate(ep.Name, inner)),
		strings.Join(meta, "  "),
		styles.DimStyle.Render(strings.Join(overviewLines, "\n")),
	}
	if selected {
		lines = append(lines, styles.AccentStyle.Render(styles.PlayChar+" play"))
	}
	return style.Width(bentoCardWidth - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}
