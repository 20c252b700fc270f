package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Truncate shortens s to at most width cells, ending in "..." when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// ProgressCells returns how many of width cells a progress percentage fills.
// Out-of-range percentages are clamped for display only.
func ProgressCells(percent float64, width int) int {
	if width <= 0 || math.IsNaN(percent) {
		return 0
	}
	cells := int(math.Round(percent / 100 * float64(width)))
	return max(0, min(width, cells))
}

// ProgressBar renders a horizontal bar of the given width
func ProgressBar(percent float64, width int) string {
	filled := ProgressCells(percent, width)
	return styles.BarFilledStyle.Render(strings.Repeat(styles.BarFull, filled)) +
		styles.BarTrackStyle.Render(strings.Repeat(styles.BarEmpty, width-filled))
}
