package progress

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// Service tracks watch progress ("continue watching") on top of a StateStore.
// Every operation is total: store failures are logged and swallowed.
type Service struct {
	store  domain.StateStore
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex // Serializes read-modify-write cycles
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source used to stamp entries without a timestamp
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new progress service
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

// Upsert records progress for (id, type), replacing any existing entry in place.
// Progress is stored as given; keeping it within 0-100 is the caller's job.
func (s *Service) Upsert(entry domain.WatchProgressEntry) {
	if !entry.Type.Valid() {
		s.logger.Warn("rejecting progress upsert", "id", entry.ID, "type", entry.Type, "error", domain.ErrInvalidMediaType)
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	if entry.Type == domain.MediaTypeMovie {
		entry.EpisodeInfo = nil
	} else if entry.EpisodeInfo != nil {
		info := *entry.EpisodeInfo
		entry.EpisodeInfo = &info
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.Load()
	if i := indexOf(state.Progress, entry.Key()); i >= 0 {
		state.Progress[i] = entry
	} else {
		state.Progress = append(state.Progress, entry)
	}

	if err := s.store.Save(state); err != nil {
		s.logger.Warn("failed to save progress", "key", entry.Key().String(), "error", err)
		return
	}
	s.logger.Debug("progress updated", "key", entry.Key().String(), "progress", entry.Progress)
}

// Get returns the current entry for (id, type)
func (s *Service) Get(id int, t domain.MediaType) (domain.WatchProgressEntry, bool) {
	entries := s.store.Load().Progress
	if i := indexOf(entries, domain.Key{ID: id, Type: t}); i >= 0 {
		return entries[i], true
	}
	return domain.WatchProgressEntry{}, false
}

// Remove deletes the entry for (id, type) if present
func (s *Service) Remove(id int, t domain.MediaType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.Key{ID: id, Type: t}
	state := s.store.Load()
	i := indexOf(state.Progress, key)
	if i < 0 {
		return false
	}
	state.Progress = append(state.Progress[:i], state.Progress[i+1:]...)

	if err := s.store.Save(state); err != nil {
		s.logger.Warn("failed to save progress", "op", "remove", "key", key.String(), "error", err)
	}
	return true
}

// List returns entries most recently watched first.
// Entries with equal timestamps keep their insertion order.
func (s *Service) List() []domain.WatchProgressEntry {
	entries := s.store.Load().Progress
	if entries == nil {
		return []domain.WatchProgressEntry{}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries
}

func indexOf(entries []domain.WatchProgressEntry, key domain.Key) int {
	for i, e := range entries {
		if e.Key() == key {
			return i
		}
	}
	return -1
}
