package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToastDefaultsToThreeSeconds(t *testing.T) {
	assert.Equal(t, 3*time.Second, NewToast(0).Duration())
	assert.Equal(t, 5*time.Second, NewToast(5*time.Second).Duration())
}

func TestWatchlistToastCopy(t *testing.T) {
	title, desc := WatchlistToast("The Matrix", true)
	assert.Equal(t, "Added to Watchlist", title)
	assert.Equal(t, "The Matrix has been added to your watchlist.", desc)

	title, desc = WatchlistToast("The Matrix", false)
	assert.Equal(t, "Removed from Watchlist", title)
	assert.Equal(t, "The Matrix has been removed from your watchlist.", desc)
}

func TestToastExpiresOnlyForItsOwnTimer(t *testing.T) {
	toast := NewToast(time.Second)
	assert.Equal(t, "", toast.View())

	require.NotNil(t, toast.Show("Added to Watchlist", "first", false))
	require.NotNil(t, toast.Show("Removed from Watchlist", "second", false))
	assert.True(t, toast.Visible())
	assert.Contains(t, toast.View(), "second")

	// The first toast's timer must not hide the newer one
	toast = toast.Update(ToastExpiredMsg{ID: 1})
	assert.True(t, toast.Visible())

	toast = toast.Update(ToastExpiredMsg{ID: 2})
	assert.False(t, toast.Visible())
	assert.Equal(t, "", toast.View())
}
