package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceCompatibilityView(t *testing.T) {
	d := NewDeviceCompatibility()
	d.SetWidth(120)

	view := d.View()
	assert.Contains(t, view, DevicesHeading)
	assert.Contains(t, view, DevicesSubheading)
	assert.Contains(t, view, "Roku")
	assert.Contains(t, view, "Hisense")
}
