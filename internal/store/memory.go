package store

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// MemoryStore keeps the encoded documents in memory (no persistence).
// It goes through the same codec as the durable stores.
type MemoryStore struct {
	mu     sync.Mutex
	docs   documents
	logger *slog.Logger

	failWrites error
}

func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{docs: documents{}, logger: logger}
}

func (s *MemoryStore) Load() domain.State {
	s.mu.Lock()
	docs := make(documents, len(s.docs))
	for k, v := range s.docs {
		docs[k] = v
	}
	s.mu.Unlock()
	return decodeState(docs, s.logger)
}

func (s *MemoryStore) Save(state domain.State) error {
	docs, err := encodeState(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites != nil {
		return s.failWrites
	}
	s.docs = docs
	return nil
}

// FailWrites makes every later Save return err without touching the documents.
// A nil err restores normal writes.
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	s.failWrites = err
	s.mu.Unlock()
}

func (s *MemoryStore) Close() error { return nil }

// Raw returns the stored bytes for a document
func (s *MemoryStore) Raw(doc string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[doc]
}

// Corrupt replaces a document's bytes verbatim
func (s *MemoryStore) Corrupt(doc string, data []byte) {
	s.mu.Lock()
	s.docs[doc] = data
	s.mu.Unlock()
}
