package watchlist

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
)

// Service manages the user's watchlist on top of a StateStore.
// Every operation is total: store failures are logged and swallowed.
type Service struct {
	store  domain.StateStore
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex // Serializes read-modify-write cycles
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source used for added_at
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new watchlist service
func NewService(store domain.StateStore, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add inserts the item unless (id, type) is already present.
// Returns true if the watchlist changed.
func (s *Service) Add(item domain.WatchlistItemInput) bool {
	if !item.Type.Valid() {
		s.logger.Warn("rejecting watchlist add", "id", item.ID, "type", item.Type, "error", domain.ErrInvalidMediaType)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.Load()
	if indexOf(state.Watchlist, item.Key()) >= 0 {
		return false
	}

	state.Watchlist = append(state.Watchlist, domain.WatchlistEntry{
		ID:         item.ID,
		Type:       item.Type,
		Title:      item.Title,
		PosterPath: item.PosterPath,
		AddedAt:    s.now(),
	})
	s.save(state, "add", item.Key())
	return true
}

// Remove deletes the entry for (id, type) if present.
// Returns true if an entry was removed.
func (s *Service) Remove(id int, t domain.MediaType) bool {
	if !t.Valid() {
		s.logger.Warn("rejecting watchlist remove", "id", id, "type", t, "error", domain.ErrInvalidMediaType)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.Key{ID: id, Type: t}
	state := s.store.Load()
	i := indexOf(state.Watchlist, key)
	if i < 0 {
		return false
	}

	state.Watchlist = append(state.Watchlist[:i], state.Watchlist[i+1:]...)
	s.save(state, "remove", key)
	return true
}

// Toggle removes the item when present and adds it otherwise.
// Returns true if the item is on the watchlist afterwards.
func (s *Service) Toggle(item domain.WatchlistItemInput) bool {
	if s.IsPresent(item.ID, item.Type) {
		s.Remove(item.ID, item.Type)
		return false
	}
	return s.Add(item)
}

// IsPresent reports whether (id, type) is on the watchlist
func (s *Service) IsPresent(id int, t domain.MediaType) bool {
	return indexOf(s.store.Load().Watchlist, domain.Key{ID: id, Type: t}) >= 0
}

// List returns all entries in insertion order
func (s *Service) List() []domain.WatchlistEntry {
	entries := s.store.Load().Watchlist
	if entries == nil {
		return []domain.WatchlistEntry{}
	}
	return entries
}

// Search returns entries whose title fuzzily matches query, best match first.
// An empty query returns the whole list.
func (s *Service) Search(query string) []domain.WatchlistEntry {
	entries := s.List()
	query = strings.TrimSpace(query)
	if query == "" || len(entries) == 0 {
		return entries
	}

	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	out := make([]domain.WatchlistEntry, len(ranks))
	for i, r := range ranks {
		out[i] = entries[r.OriginalIndex]
	}
	return out
}

func (s *Service) save(state domain.State, op string, key domain.Key) {
	if err := s.store.Save(state); err != nil {
		s.logger.Warn("failed to save watchlist", "op", op, "key", key.String(), "error", err)
		return
	}
	s.logger.Debug("watchlist updated", "op", op, "key", key.String(), "count", len(state.Watchlist))
}

func indexOf(entries []domain.WatchlistEntry, key domain.Key) int {
	for i, e := range entries {
		if e.Key() == key {
			return i
		}
	}
	return -1
}
