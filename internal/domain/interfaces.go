package domain

import "context"

// ImageResolver turns metadata image paths into fetchable URLs.
// An empty path resolves to "".
type ImageResolver interface {
	PosterURL(path, size string) string
	BackdropURL(path, size string) string
}

// MetadataClient is the read-only view of the remote metadata API.
// Apart from the ImageResolver methods, all methods may hit the network and
// must be called from tea.Cmd functions, never from View().
type MetadataClient interface {
	ImageResolver

	TrendingMovies(ctx context.Context) ([]Movie, error)
	TrendingShows(ctx context.Context) ([]Show, error)

	Movie(ctx context.Context, id int) (*Movie, error)
	Show(ctx context.Context, id int) (*Show, error)
	Season(ctx context.Context, showID, seasonNumber int) (*Season, error)

	// Episodes fetches individual episodes concurrently. Results keep the
	// order of refs; refs that fail are omitted and reported in the error.
	Episodes(ctx context.Context, refs []EpisodeRef) ([]Episode, error)
}

// WatchlistCommands are the mutations the presentation layer may trigger on the watchlist.
type WatchlistCommands interface {
	Add(item WatchlistItemInput) bool
	Remove(id int, t MediaType) bool
	Toggle(item WatchlistItemInput) bool
	IsPresent(id int, t MediaType) bool
	List() []WatchlistEntry
}

// ProgressCommands are the mutations the presentation layer may trigger on watch progress.
type ProgressCommands interface {
	Upsert(entry WatchProgressEntry)
	Get(id int, t MediaType) (WatchProgressEntry, bool)
	Remove(id int, t MediaType) bool
	List() []WatchProgressEntry
}
