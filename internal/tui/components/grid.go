package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const (
	posterCardWidth  = 24
	posterCardHeight = 5 // rendered lines per card including border
	menuWidth        = 26
)

// ToggleWatchlistMsg asks the app to add or remove a card's title
type ToggleWatchlistMsg struct {
	Item domain.ListItem
}

// OpenItemMsg asks the app to open a card (drill into a show)
type OpenItemMsg struct {
	Item domain.ListItem
}

// PosterGrid renders movie and TV cards in rows with a per-card options menu
type PosterGrid struct {
	title string
	items []domain.ListItem

	// Watchlist membership, refreshed by the app after each mutation
	listed map[domain.Key]bool

	// Selection
	cursor  int
	rowOff  int
	columns int
	rows    int

	// Dimensions
	width   int
	height  int
	focused bool

	menuOpen bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // indices into items

	keys GridKeyMap
}

// NewPosterGrid creates an empty grid with a heading
func NewPosterGrid(title string) PosterGrid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = styles.TitleStyle

	return PosterGrid{
		title:       title,
		listed:      map[domain.Key]bool{},
		columns:     1,
		rows:        1,
		filterInput: ti,
		keys:        DefaultGridKeyMap(),
	}
}

// SetItems replaces the cards
func (g *PosterGrid) SetItems(items []domain.ListItem) {
	g.items = items
	g.applyFilter()
	g.clampCursor()
}

// SetListed replaces the watchlist membership set
func (g *PosterGrid) SetListed(listed map[domain.Key]bool) {
	if listed == nil {
		listed = map[domain.Key]bool{}
	}
	g.listed = listed
}

// SetSize lays out as many columns and rows as fit
func (g *PosterGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.columns = max(1, width/(posterCardWidth+1))
	g.rows = max(1, (height-2)/posterCardHeight) // heading + filter line
	g.ensureVisible()
}

func (g *PosterGrid) SetFocused(focused bool) {
	g.focused = focused
	if !focused {
		g.menuOpen = false
	}
}

func (g PosterGrid) IsFocused() bool   { return g.focused }
func (g PosterGrid) MenuOpen() bool    { return g.menuOpen }
func (g PosterGrid) Cursor() int       { return g.cursor }
func (g PosterGrid) Columns() int      { return g.columns }
func (g PosterGrid) IsFiltering() bool { return g.filterActive }

// IsFilterTyping reports whether keystrokes go to the filter input
func (g PosterGrid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// Len returns the number of visible cards (after filtering)
func (g PosterGrid) Len() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.items)
}

// Selected returns the card under the cursor
func (g PosterGrid) Selected() domain.ListItem {
	if g.Len() == 0 {
		return nil
	}
	return g.items[g.mapIndex(g.cursor)]
}

func (g PosterGrid) mapIndex(i int) int {
	if g.filteredIdx != nil {
		return g.filteredIdx[i]
	}
	return i
}

func (g *PosterGrid) clampCursor() {
	if g.cursor >= g.Len() {
		g.cursor = max(0, g.Len()-1)
	}
	g.ensureVisible()
}

func (g *PosterGrid) ensureVisible() {
	row := g.cursor / g.columns
	if row < g.rowOff {
		g.rowOff = row
	}
	if row >= g.rowOff+g.rows {
		g.rowOff = row - g.rows + 1
	}
}

func (g *PosterGrid) clearFilter() {
	g.filterActive = false
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.filteredIdx = nil
	g.cursor = 0
	g.rowOff = 0
}

// applyFilter narrows the cards to fuzzy title matches, best first
func (g *PosterGrid) applyFilter() {
	query := strings.ToLower(g.filterInput.Value())
	if !g.filterActive || query == "" {
		g.filteredIdx = nil
		return
	}

	titles := make([]string, len(g.items))
	for i, item := range g.items {
		titles[i] = strings.ToLower(item.GetTitle())
	}

	matches := fuzzy.Find(query, titles)
	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}

	// Reset cursor to first match
	g.cursor = 0
	g.rowOff = 0
}

func (g PosterGrid) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (g PosterGrid) Update(msg tea.Msg) (PosterGrid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	// Filter input owns the keyboard while typing
	if g.IsFilterTyping() {
		switch keyMsg.String() {
		case "esc":
			g.clearFilter()
			return g, nil
		case "enter":
			g.filterInput.Blur()
			return g, nil
		case "backspace":
			if g.filterInput.Value() == "" {
				g.clearFilter()
				return g, nil
			}
		}
		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	if g.menuOpen {
		switch {
		case key.Matches(keyMsg, g.keys.Enter):
			g.menuOpen = false
			if item := g.Selected(); item != nil {
				return g, func() tea.Msg { return ToggleWatchlistMsg{Item: item} }
			}
		case key.Matches(keyMsg, g.keys.Escape), key.Matches(keyMsg, g.keys.Menu):
			g.menuOpen = false
		}
		return g, nil
	}

	if key.Matches(keyMsg, g.keys.Filter) {
		g.filterActive = true
		return g, g.filterInput.Focus()
	}
	if g.filterActive && key.Matches(keyMsg, g.keys.Escape) {
		g.clearFilter()
		return g, nil
	}

	count := g.Len()
	if count == 0 {
		return g, nil
	}

	switch {
	case key.Matches(keyMsg, g.keys.Left):
		if g.cursor > 0 {
			g.cursor--
		}
	case key.Matches(keyMsg, g.keys.Right):
		if g.cursor < count-1 {
			g.cursor++
		}
	case key.Matches(keyMsg, g.keys.Up):
		if g.cursor-g.columns >= 0 {
			g.cursor -= g.columns
		}
	case key.Matches(keyMsg, g.keys.Down):
		if g.cursor+g.columns < count {
			g.cursor += g.columns
		}
	case key.Matches(keyMsg, g.keys.Home):
		g.cursor = 0
	case key.Matches(keyMsg, g.keys.End):
		g.cursor = count - 1
	case key.Matches(keyMsg, g.keys.Menu):
		g.menuOpen = true
	case key.Matches(keyMsg, g.keys.Enter):
		item := g.Selected()
		return g, func() tea.Msg { return OpenItemMsg{Item: item} }
	}
	g.ensureVisible()
	return g, nil
}

// View renders the heading, optional filter bar, and the visible rows of cards
func (g PosterGrid) View() string {
	parts := []string{styles.HeadingStyle.Render(g.title)}

	if g.filterActive {
		parts = append(parts, g.filterInput.View())
	}

	count := g.Len()
	if count == 0 {
		msg := "Nothing here yet"
		if g.filterActive {
			msg = "No matches"
		}
		parts = append(parts, styles.DimStyle.Render(msg))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	start := g.rowOff * g.columns
	end := min(count, start+g.rows*g.columns)
	for rowStart := start; rowStart < end; rowStart += g.columns {
		cards := make([]string, 0, g.columns)
		for i := rowStart; i < min(end, rowStart+g.columns); i++ {
			cards = append(cards, g.renderCard(g.items[g.mapIndex(i)], g.focused && i == g.cursor))
		}
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	if g.menuOpen {
		if item := g.Selected(); item != nil {
			parts = append(parts, g.renderMenu(item))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (g PosterGrid) renderCard(item domain.ListItem, selected bool) string {
	style := styles.CardStyle
	if selected {
		style = styles.SelectedCardStyle
	}
	inner := posterCardWidth - style.GetHorizontalFrameSize()

	mark := styles.DimStyle.Render(styles.WatchlistChar)
	if g.listed[item.GetKey()] {
		mark = styles.SuccessStyle.Render(styles.ListedChar)
	}

	var meta []string
	if y := item.GetYear(); y > 0 {
		meta = append(meta, fmt.Sprintf("%d", y))
	}
	if r := item.GetRating(); r > 0 {
		meta = append(meta, styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", r)))
	}

	lines := []string{
		mark + " " + styles.TitleStyle.Render(Truncate(item.GetTitle(), inner-2)),
		styles.SubtitleStyle.Render(strings.Join(meta, "  ")),
		styles.DimStyle.Render(item.GetKey().Type.Label()),
	}
	return style.Width(posterCardWidth - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

// renderMenu draws the options dropdown for the selected card
func (g PosterGrid) renderMenu(item domain.ListItem) string {
	var line string
	if g.listed[item.GetKey()] {
		line = styles.MenuRemoveStyle.Render("✕") + " Remove from Watchlist"
	} else {
		line = styles.MenuAddStyle.Render("+") + " Add to Watchlist"
	}
	return styles.MenuStyle.Width(menuWidth).Render(line)
}
