package components

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressCells(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		width   int
		want    int
	}{
		{"empty", 0, 20, 0},
		{"half", 50, 20, 10},
		{"full", 100, 20, 20},
		{"rounds", 33, 10, 3},
		{"over range clamps", 140, 20, 20},
		{"negative clamps", -5, 20, 0},
		{"nan", math.NaN(), 20, 0},
		{"zero width", 50, 0, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressCells(tt.percent, tt.width))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Hello", Truncate("Hello", 10))
	assert.Equal(t, "Hello...", Truncate("Hello World", 8))
	assert.Equal(t, "..", Truncate("abc def", 2))
	assert.Equal(t, "", Truncate("anything", 0))
}
