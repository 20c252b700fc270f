package domain

// Document names for the persisted collections.
const (
	DocWatchlist     = "watchlist"
	DocWatchProgress = "watch_progress"
)

// StateStore owns the serialized watchlist and progress collections.
// Callers read-modify-write the whole State; there is no partial update.
type StateStore interface {
	// Load returns the persisted state, or the empty default when nothing
	// is stored or a collection cannot be decoded.
	Load() State

	// Save replaces both collections. Readers never see a half-written state.
	Save(state State) error

	Close() error
}
