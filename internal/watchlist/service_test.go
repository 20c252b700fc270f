package watchlist_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/watchlist"
)

var matrix = domain.WatchlistItemInput{ID: 603, Type: domain.MediaTypeMovie, Title: "The Matrix", PosterPath: "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg"}

func newService(t *testing.T) (*watchlist.Service, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore(adapter.NullLogger())
	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := watchlist.NewService(mem, adapter.NullLogger(), watchlist.WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))
	return svc, mem
}

func TestAddIsIdempotent(t *testing.T) {
	svc, _ := newService(t)

	assert.True(t, svc.Add(matrix))
	assert.False(t, svc.Add(matrix))

	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, 603, list[0].ID)
}

func TestMembership(t *testing.T) {
	svc, _ := newService(t)
	item := domain.WatchlistItemInput{ID: 42, Type: domain.MediaTypeMovie, Title: "Answer"}

	assert.False(t, svc.IsPresent(42, domain.MediaTypeMovie))
	svc.Add(item)
	assert.True(t, svc.IsPresent(42, domain.MediaTypeMovie))
	// Same id, other type, is a different title.
	assert.False(t, svc.IsPresent(42, domain.MediaTypeTV))

	assert.True(t, svc.Remove(42, domain.MediaTypeMovie))
	assert.False(t, svc.IsPresent(42, domain.MediaTypeMovie))
}

func TestMatrixScenario(t *testing.T) {
	svc, _ := newService(t)

	svc.Add(matrix)
	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, 603, list[0].ID)
	assert.Equal(t, "The Matrix", list[0].Title)
	assert.False(t, list[0].AddedAt.IsZero())

	svc.Remove(603, domain.MediaTypeMovie)
	assert.Empty(t, svc.List())
}

func TestRemoveMissingIsNoop(t *testing.T) {
	svc, _ := newService(t)
	svc.Add(matrix)

	assert.False(t, svc.Remove(604, domain.MediaTypeMovie))
	assert.False(t, svc.Remove(603, domain.MediaTypeTV))
	assert.Len(t, svc.List(), 1)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	svc, _ := newService(t)
	svc.Add(domain.WatchlistItemInput{ID: 3, Type: domain.MediaTypeTV, Title: "C"})
	svc.Add(domain.WatchlistItemInput{ID: 1, Type: domain.MediaTypeMovie, Title: "A"})
	svc.Add(domain.WatchlistItemInput{ID: 2, Type: domain.MediaTypeMovie, Title: "B"})
	svc.Remove(1, domain.MediaTypeMovie)
	svc.Add(domain.WatchlistItemInput{ID: 1, Type: domain.MediaTypeMovie, Title: "A"})

	var ids []int
	for _, e := range svc.List() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int{3, 2, 1}, ids)
}

func TestToggle(t *testing.T) {
	svc, _ := newService(t)

	assert.True(t, svc.Toggle(matrix))
	assert.True(t, svc.IsPresent(603, domain.MediaTypeMovie))

	assert.False(t, svc.Toggle(matrix))
	assert.False(t, svc.IsPresent(603, domain.MediaTypeMovie))
}

func TestInvalidMediaTypeRejected(t *testing.T) {
	svc, _ := newService(t)

	assert.False(t, svc.Add(domain.WatchlistItemInput{ID: 1, Type: "anime", Title: "Akira"}))
	assert.False(t, svc.Remove(1, "anime"))
	assert.Empty(t, svc.List())
}

func TestCorruptStoreReadsAsEmpty(t *testing.T) {
	svc, mem := newService(t)
	svc.Add(matrix)

	mem.Corrupt(domain.DocWatchlist, []byte("\x00\x01not-json"))

	assert.Empty(t, svc.List())
	assert.False(t, svc.IsPresent(603, domain.MediaTypeMovie))

	// The next write replaces the corrupt document.
	assert.True(t, svc.Add(matrix))
	assert.Len(t, svc.List(), 1)
}

func TestWriteFailureIsSwallowed(t *testing.T) {
	svc, mem := newService(t)
	mem.FailWrites(errors.New("quota exceeded"))

	assert.NotPanics(t, func() {
		svc.Add(matrix)
		svc.Remove(603, domain.MediaTypeMovie)
	})
	assert.Empty(t, svc.List())
}

func TestListNeverNil(t *testing.T) {
	svc, _ := newService(t)
	assert.NotNil(t, svc.List())
}

func TestSearch(t *testing.T) {
	svc, _ := newService(t)
	svc.Add(matrix)
	svc.Add(domain.WatchlistItemInput{ID: 604, Type: domain.MediaTypeMovie, Title: "The Matrix Reloaded"})
	svc.Add(domain.WatchlistItemInput{ID: 1399, Type: domain.MediaTypeTV, Title: "Game of Thrones"})

	got := svc.Search("matrix")
	require.Len(t, got, 2)
	assert.Equal(t, 603, got[0].ID)
	assert.Equal(t, 604, got[1].ID)

	assert.Len(t, svc.Search(""), 3)
	assert.Empty(t, svc.Search("sopranos"))
}

func TestPersistsThroughStore(t *testing.T) {
	svc, mem := newService(t)
	svc.Add(matrix)

	reloaded := watchlist.NewService(mem, adapter.NullLogger())
	assert.True(t, reloaded.IsPresent(603, domain.MediaTypeMovie))
	assert.Contains(t, string(mem.Raw(domain.DocWatchlist)), `"poster_path":"/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg"`)
}
