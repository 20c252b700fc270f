package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
)

func sampleState() domain.State {
	ts := time.Date(2026, 3, 1, 20, 30, 0, 0, time.UTC)
	return domain.State{
		Watchlist: []domain.WatchlistEntry{
			{ID: 603, Type: domain.MediaTypeMovie, Title: "The Matrix", PosterPath: "/matrix.jpg", AddedAt: ts},
			{ID: 1399, Type: domain.MediaTypeTV, Title: "Game of Thrones", PosterPath: "/got.jpg", AddedAt: ts.Add(time.Minute)},
		},
		Progress: []domain.WatchProgressEntry{
			{
				ID: 1399, Type: domain.MediaTypeTV, Title: "Game of Thrones", PosterPath: "/got.jpg",
				Progress: 42.5, EpisodeInfo: &domain.EpisodeInfo{SeasonNumber: 1, EpisodeNumber: 3},
				Timestamp: ts.Add(time.Hour),
			},
			{ID: 27205, Type: domain.MediaTypeMovie, Title: "Inception", Progress: 10, Timestamp: ts},
		},
	}
}

// backends returns a fresh instance of each store implementation.
func backends(t *testing.T) map[string]domain.StateStore {
	t.Helper()
	logger := adapter.NullLogger()

	bolt, err := NewBoltStore(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { bolt.Close() })

	file, err := NewFileStore(afero.NewMemMapFs(), "/state", logger)
	require.NoError(t, err)

	return map[string]domain.StateStore{
		"bolt":   bolt,
		"file":   file,
		"memory": NewMemoryStore(logger),
	}
}

func TestLoadEmptyReturnsDefault(t *testing.T) {
	for name, s := range backends(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			state := s.Load()
			assert.Empty(t, state.Watchlist)
			assert.Empty(t, state.Progress)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	want := sampleState()
	for name, s := range backends(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(want))
			got := s.Load()
			assert.Equal(t, want, got)
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	for name, s := range backends(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(sampleState()))
			require.NoError(t, s.Save(domain.State{}))

			got := s.Load()
			assert.Empty(t, got.Watchlist)
			assert.Empty(t, got.Progress)
		})
	}
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	logger := adapter.NullLogger()

	s, err := NewBoltStore(dir, logger)
	require.NoError(t, err)
	require.NoError(t, s.Save(sampleState()))
	require.NoError(t, s.Close())

	reopened, err := NewBoltStore(dir, logger)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, sampleState(), reopened.Load())
	assert.FileExists(t, filepath.Join(dir, dbFileName))
}

func TestMemoryStoreCorruptDocumentIsDiscarded(t *testing.T) {
	s := NewMemoryStore(adapter.NullLogger())
	require.NoError(t, s.Save(sampleState()))

	s.Corrupt(domain.DocWatchlist, []byte("{not json"))

	got := s.Load()
	assert.Empty(t, got.Watchlist)
	// The other collection is unaffected.
	assert.Len(t, got.Progress, 2)
}

func TestFileStoreCorruptFilesYieldEmptyState(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileStore(fs, "/state", adapter.NullLogger())
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "/state/watchlist.json", []byte("garbage"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/state/watch_progress.json", []byte(`{"id":1}`), 0644))

	got := s.Load()
	assert.Equal(t, domain.State{}, got)
}

func TestFileStoreWritesOnlyChangedDocuments(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileStore(fs, "/state", adapter.NullLogger())
	require.NoError(t, err)

	state := sampleState()
	require.NoError(t, s.Save(state))

	// Remove the progress file behind the store's back; an unchanged
	// progress collection must not be rewritten.
	require.NoError(t, fs.Remove("/state/watch_progress.json"))

	state.Watchlist = state.Watchlist[:1]
	require.NoError(t, s.Save(state))

	exists, err := afero.Exists(fs, "/state/watch_progress.json")
	require.NoError(t, err)
	assert.False(t, exists)

	data, err := afero.ReadFile(fs, "/state/watchlist.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), "The Matrix")
	assert.NotContains(t, string(data), "Game of Thrones")
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileStore(fs, "/state", adapter.NullLogger())
	require.NoError(t, err)
	require.NoError(t, s.Save(sampleState()))

	matches, err := afero.Glob(fs, "/state/*.tmp")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDecodeDropsInvalidEntries(t *testing.T) {
	logger := adapter.NullLogger()
	data := []byte(`[
		{"id": 1, "type": "movie", "title": "Alien"},
		{"id": 2, "type": "anime", "title": "Akira"},
		"nonsense",
		{"id": 1, "type": "movie", "title": "Alien (duplicate)"},
		{"id": 1, "type": "tv", "title": "Alien: Earth"},
		{"id": 5, "title": "No Type"}
	]`)

	got := decodeWatchlist(data, logger)
	require.Len(t, got, 2)
	assert.Equal(t, "Alien", got[0].Title)
	assert.Equal(t, domain.MediaTypeTV, got[1].Type)
}

func TestLoadDropsEntriesWithoutType(t *testing.T) {
	s := NewMemoryStore(adapter.NullLogger())
	s.Corrupt(domain.DocWatchlist, []byte(`[{"id":5,"title":"No Type"},{"id":6,"type":"tv","title":"Dark"}]`))
	s.Corrupt(domain.DocWatchProgress, []byte(`[{"id":5,"title":"No Type","progress":40}]`))

	state := s.Load()
	require.Len(t, state.Watchlist, 1)
	assert.Equal(t, 6, state.Watchlist[0].ID)
	assert.Empty(t, state.Progress)
}

func TestMemoryStoreFailWrites(t *testing.T) {
	s := NewMemoryStore(adapter.NullLogger())
	require.NoError(t, s.Save(domain.State{Watchlist: []domain.WatchlistEntry{{ID: 1, Type: domain.MediaTypeMovie, Title: "Alien"}}}))

	s.FailWrites(errors.New("disk full"))
	err := s.Save(domain.State{})
	require.EqualError(t, err, "disk full")
	assert.Len(t, s.Load().Watchlist, 1)

	s.FailWrites(nil)
	require.NoError(t, s.Save(domain.State{}))
	assert.Empty(t, s.Load().Watchlist)
}

func TestDecodeProgressKeepsLatestDuplicate(t *testing.T) {
	logger := adapter.NullLogger()
	data := []byte(`[
		{"id": 7, "type": "movie", "title": "Se7en", "progress": 20, "timestamp": "2026-01-01T10:00:00Z",
		 "episode_info": {"season_number": 1, "episode_number": 1}},
		{"id": 9, "type": "movie", "title": "District 9", "progress": 5, "timestamp": "2026-01-01T09:00:00Z"},
		{"id": 7, "type": "movie", "title": "Se7en", "progress": 80, "timestamp": "2026-01-02T10:00:00Z"}
	]`)

	got := decodeProgress(data, logger)
	require.Len(t, got, 2)
	assert.Equal(t, 7, got[0].ID)
	assert.Equal(t, 80.0, got[0].Progress)
	assert.Nil(t, got[0].EpisodeInfo)
	assert.Equal(t, 9, got[1].ID)
}

func TestOpenBackends(t *testing.T) {
	logger := adapter.NullLogger()

	s, err := Open("memory", "", logger)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open("file", t.TempDir(), logger)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open("", t.TempDir(), logger)
	require.NoError(t, err)
	assert.IsType(t, &BoltStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open("redis", "", logger)
	assert.True(t, errors.Is(err, domain.ErrUnknownBackend))
}
