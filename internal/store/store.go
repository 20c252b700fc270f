package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketState = []byte("state")
)

const dbFileName = "marquee.db"

// BoltStore implements domain.StateStore using BoltDB.
// Both collections live in one bucket and are written in a single transaction.
type BoltStore struct {
	db     *bolt.DB
	logger *slog.Logger

	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache documents
}

// NewBoltStore opens (or creates) the database under dir.
func NewBoltStore(dir string, logger *slog.Logger) (*BoltStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("opened state store", "backend", BackendBolt, "path", dbPath)
	return &BoltStore{db: db, logger: logger}, nil
}

func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads both documents in one read transaction.
func (s *BoltStore) Load() domain.State {
	s.mu.RLock()
	if s.cache != nil {
		docs := s.cache
		s.mu.RUnlock()
		return decodeState(docs, s.logger)
	}
	s.mu.RUnlock()

	docs := documents{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		if b == nil {
			return nil
		}
		for _, name := range []string{domain.DocWatchlist, domain.DocWatchProgress} {
			if v := b.Get([]byte(name)); v != nil {
				data := make([]byte, len(v))
				copy(data, v)
				docs[name] = data
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to read state", "error", err)
		return domain.State{}
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache = docs
	s.mu.Unlock()

	return decodeState(docs, s.logger)
}

// Save writes both documents in a single update transaction.
func (s *BoltStore) Save(state domain.State) error {
	docs, err := encodeState(state)
	if err != nil {
		return err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		for name, data := range docs {
			if err := b.Put([]byte(name), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Cache may be stale relative to disk now; drop it.
		s.mu.Lock()
		s.cache = nil
		s.mu.Unlock()
		return fmt.Errorf("failed to write state: %w", err)
	}

	s.mu.Lock()
	s.cache = docs
	s.mu.Unlock()
	return nil
}
