package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/progress"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/watchlist"
)

type fakeMetadata struct {
	movies []domain.Movie
	shows  []domain.Show
	season *domain.Season
}

func (f *fakeMetadata) PosterURL(path, size string) string   { return size + path }
func (f *fakeMetadata) BackdropURL(path, size string) string { return size + path }
func (f *fakeMetadata) TrendingMovies(context.Context) ([]domain.Movie, error) {
	return f.movies, nil
}
func (f *fakeMetadata) TrendingShows(context.Context) ([]domain.Show, error) {
	return f.shows, nil
}
func (f *fakeMetadata) Movie(_ context.Context, id int) (*domain.Movie, error) {
	for _, m := range f.movies {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, domain.ErrItemNotFound
}
func (f *fakeMetadata) Show(_ context.Context, id int) (*domain.Show, error) {
	for _, s := range f.shows {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, domain.ErrItemNotFound
}
func (f *fakeMetadata) Season(_ context.Context, showID, seasonNumber int) (*domain.Season, error) {
	return f.season, nil
}
func (f *fakeMetadata) Episodes(_ context.Context, refs []domain.EpisodeRef) ([]domain.Episode, error) {
	var out []domain.Episode
	for _, ref := range refs {
		for _, ep := range f.season.Episodes {
			if ep.Ref() == ref {
				out = append(out, ep)
			}
		}
	}
	return out, nil
}

type harness struct {
	model     Model
	watchlist *watchlist.Service
	progress  *progress.Service
}

func newHarness(t *testing.T, meta domain.MetadataClient) *harness {
	t.Helper()
	mem := store.NewMemoryStore(adapter.NullLogger())
	wl := watchlist.NewService(mem, adapter.NullLogger())
	pr := progress.NewService(mem, adapter.NullLogger())

	m := NewModel(wl, pr, meta, adapter.NullLogger(), Options{RailWidth: 4, ToastDuration: time.Second})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return &harness{model: next.(Model), watchlist: wl, progress: pr}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func thrones() *fakeMetadata {
	return &fakeMetadata{
		movies: []domain.Movie{{ID: 603, Title: "The Matrix", Runtime: 136, ReleaseDate: time.Date(1999, 3, 30, 0, 0, 0, 0, time.UTC)}},
		shows:  []domain.Show{{ID: 1399, Name: "Game of Thrones", SeasonCount: 8, BackdropPath: "/got-bg.jpg"}},
		season: &domain.Season{ShowID: 1399, SeasonNumber: 1, Episodes: []domain.Episode{
			{ID: 1, ShowID: 1399, Name: "Winter Is Coming", SeasonNumber: 1, EpisodeNumber: 1},
			{ID: 2, ShowID: 1399, Name: "The Kingsroad", SeasonNumber: 1, EpisodeNumber: 2},
		}},
	}
}

func TestToggleWatchlistUpdatesServiceAndToast(t *testing.T) {
	h := newHarness(t, thrones())
	matrix := &domain.Movie{ID: 603, Title: "The Matrix"}

	cmd := h.send(components.ToggleWatchlistMsg{Item: matrix})
	require.NotNil(t, cmd)
	assert.True(t, h.watchlist.IsPresent(603, domain.MediaTypeMovie))
	assert.True(t, h.model.Toast.Visible())
	assert.Equal(t, "Added to Watchlist", h.model.Toast.Title())
	assert.Equal(t, "The Matrix has been added to your watchlist.", h.model.Toast.Description())
	assert.Equal(t, 1, h.model.Saved.Len())

	h.send(components.ToggleWatchlistMsg{Item: matrix})
	assert.False(t, h.watchlist.IsPresent(603, domain.MediaTypeMovie))
	assert.Equal(t, "Removed from Watchlist", h.model.Toast.Title())
	assert.Equal(t, 0, h.model.Saved.Len())
}

func TestTrendingLoadPopulatesGrids(t *testing.T) {
	meta := thrones()
	h := newHarness(t, meta)

	msg := LoadTrendingCmd(meta)()
	h.send(msg)

	assert.False(t, h.model.Loading)
	assert.Equal(t, 1, h.model.Movies.Len())
	assert.Equal(t, 1, h.model.Shows.Len())
}

func TestPlayEpisodeRecordsProgressOnce(t *testing.T) {
	meta := thrones()
	h := newHarness(t, meta)

	cmd := h.send(components.OpenItemMsg{Item: &meta.shows[0]})
	require.NotNil(t, cmd)
	require.NotNil(t, h.model.episodes)

	h.send(cmd())
	h.send(LoadSeasonCmd(meta, meta.shows[0], 1)())
	require.Equal(t, 2, h.model.episodes.grid.Len())

	item := components.BentoItem{Episode: meta.season.Episodes[1], ShowID: 1399, ShowName: "Game of Thrones"}
	h.send(components.PlayEpisodeMsg{Item: item})

	entry, ok := h.progress.Get(1399, domain.MediaTypeTV)
	require.True(t, ok)
	assert.Equal(t, 0.0, entry.Progress)
	require.NotNil(t, entry.EpisodeInfo)
	assert.Equal(t, domain.EpisodeInfo{SeasonNumber: 1, EpisodeNumber: 2}, *entry.EpisodeInfo)

	// Replaying the same episode keeps recorded progress
	entry.Progress = 60
	h.progress.Upsert(entry)
	h.send(components.PlayEpisodeMsg{Item: item})

	entry, _ = h.progress.Get(1399, domain.MediaTypeTV)
	assert.Equal(t, 60.0, entry.Progress)
	assert.Len(t, h.progress.List(), 1)
	assert.Equal(t, 1, h.model.Rail.Len())
}

func TestRemoveProgressFromRail(t *testing.T) {
	h := newHarness(t, thrones())
	h.progress.Upsert(domain.WatchProgressEntry{ID: 603, Type: domain.MediaTypeMovie, Title: "The Matrix", Progress: 40})
	h.send(components.RemoveProgressMsg{Key: domain.Key{ID: 603, Type: domain.MediaTypeMovie}})

	assert.Empty(t, h.progress.List())
	assert.Equal(t, 0, h.model.Rail.Len())
}

func TestResumeShowOpensRecordedSeason(t *testing.T) {
	meta := thrones()
	h := newHarness(t, meta)

	entry := domain.WatchProgressEntry{ID: 1399, Type: domain.MediaTypeTV, Title: "Game of Thrones",
		EpisodeInfo: &domain.EpisodeInfo{SeasonNumber: 1, EpisodeNumber: 2}}
	cmd := h.send(components.ResumeMsg{Entry: entry})
	require.NotNil(t, cmd)

	h.send(cmd())
	h.send(LoadSeasonCmd(meta, meta.shows[0], 1)())
	assert.Equal(t, 1, h.model.episodes.grid.Cursor())

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, h.model.episodes)
}

func TestOpenMovieStartsProgress(t *testing.T) {
	h := newHarness(t, thrones())

	h.send(components.OpenItemMsg{Item: &domain.Movie{ID: 603, Title: "The Matrix"}})
	entry, ok := h.progress.Get(603, domain.MediaTypeMovie)
	require.True(t, ok)
	assert.Equal(t, 0.0, entry.Progress)
	assert.Contains(t, h.model.StatusMsg, "The Matrix")
}

func TestTabsWrapAround(t *testing.T) {
	h := newHarness(t, thrones())

	h.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabDevices, h.model.Tab)
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabHome, h.model.Tab)
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabWatchlist, h.model.Tab)
	assert.True(t, h.model.Saved.IsFocused())
	assert.False(t, h.model.Rail.IsFocused())
}

func TestWithoutMetadataShowsStatus(t *testing.T) {
	h := newHarness(t, nil)
	assert.True(t, h.model.StatusIsErr)
	assert.Contains(t, h.model.View(), "Continue Watching")

	h.send(components.OpenItemMsg{Item: &domain.Show{ID: 1399, Name: "Game of Thrones"}})
	assert.Nil(t, h.model.episodes)
}

func TestOpenMovieLoadsDetails(t *testing.T) {
	meta := thrones()
	h := newHarness(t, meta)

	cmd := h.send(components.OpenItemMsg{Item: &meta.movies[0]})
	require.NotNil(t, cmd)

	h.send(LoadMovieCmd(meta, 603)())
	assert.Equal(t, "Now watching The Matrix (1999) · 2h 16m", h.model.StatusMsg)
}

func TestRailEpisodeNamesLoadOnce(t *testing.T) {
	meta := thrones()
	h := newHarness(t, meta)
	h.progress.Upsert(domain.WatchProgressEntry{ID: 1399, Type: domain.MediaTypeTV, Title: "Game of Thrones",
		EpisodeInfo: &domain.EpisodeInfo{SeasonNumber: 1, EpisodeNumber: 2}})

	cmd := h.model.railEpisodesCmd()
	require.NotNil(t, cmd)
	h.send(cmd())

	assert.True(t, h.model.Rail.HasEpisodeName(domain.EpisodeRef{ShowID: 1399, SeasonNumber: 1, EpisodeNumber: 2}))
	assert.Nil(t, h.model.railEpisodesCmd())
}

func TestEpisodesViewShowsBackdrop(t *testing.T) {
	meta := thrones()
	h := newHarness(t, meta)

	cmd := h.send(components.OpenItemMsg{Item: &meta.shows[0]})
	require.NotNil(t, cmd)
	h.send(cmd())

	require.NotNil(t, h.model.episodes)
	assert.Equal(t, "/got-bg.jpg", h.model.episodes.backdrop)
	assert.Contains(t, h.model.View(), "/got-bg.jpg")
}

func TestStaleStatusTimerKeepsNewerStatus(t *testing.T) {
	h := newHarness(t, thrones())

	first := h.send(StatusMsg{Message: "first"})
	require.NotNil(t, first)
	firstID := h.model.statusID
	h.send(StatusMsg{Message: "second"})

	h.send(ClearStatusMsg{ID: firstID})
	assert.Equal(t, "second", h.model.StatusMsg)

	h.send(ClearStatusMsg{ID: h.model.statusID})
	assert.Empty(t, h.model.StatusMsg)
}
