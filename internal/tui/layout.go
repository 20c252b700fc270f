package tui

const (
	railHeight    = 9 // heading, card with border, resume line
	minGridHeight = 7
)

// updateLayout sizes every component from the terminal dimensions
func (m *Model) updateLayout() {
	bodyHeight := max(0, m.Height-ChromeHeight)

	m.Rail.SetWidth(m.Width)

	gridHeight := max(minGridHeight, (bodyHeight-railHeight)/2)
	m.Movies.SetSize(m.Width, gridHeight)
	m.Shows.SetSize(m.Width, gridHeight)
	m.Saved.SetSize(m.Width, bodyHeight)

	m.Devices.SetWidth(m.Width)

	if m.episodes != nil {
		m.episodes.grid.SetWidth(m.Width)
	}
}
