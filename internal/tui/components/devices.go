package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

const (
	DevicesHeading    = "Watch on your favourite devices."
	DevicesTagline    = "Anytime. Anywhere."
	DevicesSubheading = "Our leading supported devices"
	DevicesFooter     = "For more information see our full list of supported devices."
	devicesCopy       = "Whether you are at home or on the go, Marquee is available on a wide range of mobile and " +
		"connected devices including Smart TVs, Chromecast, Playstation, Xbox and more."
)

// DeviceRows lists the supported device brands, one slice per display row
var DeviceRows = [][]string{
	{"LG", "Roku", "Sony"},
	{"Apple TV", "Android TV", "Google Play", "App Store", "Fire TV", "Xbox", "Hisense"},
}

// DeviceCompatibility is the static "supported devices" section
type DeviceCompatibility struct {
	width int
}

func NewDeviceCompatibility() DeviceCompatibility {
	return DeviceCompatibility{}
}

func (d *DeviceCompatibility) SetWidth(width int) { d.width = width }

// View centers the copy and device rows within the available width
func (d DeviceCompatibility) View() string {
	width := max(20, d.width)
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	wrap := lipgloss.NewStyle().Width(min(width, 80)).Align(lipgloss.Center)

	sep := styles.DimStyle.Render(strings.Repeat("─", min(width, 60)))

	lines := []string{
		center.Render(styles.TitleStyle.Render(DevicesHeading)),
		center.Render(styles.RatingStyle.Bold(true).Render(DevicesTagline)),
		"",
		center.Render(wrap.Render(styles.SubtitleStyle.Render(devicesCopy))),
		"",
		center.Render(sep),
		"",
		center.Render(styles.TitleStyle.Render(DevicesSubheading)),
		"",
	}
	for _, row := range DeviceRows {
		badges := make([]string, len(row))
		for i, name := range row {
			badges[i] = styles.BadgeStyle.Render(name)
		}
		lines = append(lines, center.Render(wrap.Render(strings.Join(badges, "  "))), "")
	}
	lines = append(lines, center.Render(styles.DimStyle.Render(DevicesFooter)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
