package store

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// Backend names accepted by Open
const (
	BackendBolt   = "bolt"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Open builds the configured state store. An empty backend means bolt.
func Open(backend, dir string, logger *slog.Logger) (domain.StateStore, error) {
	switch strings.ToLower(backend) {
	case "", BackendBolt:
		return NewBoltStore(dir, logger)
	case BackendFile:
		return NewFileStore(nil, dir, logger)
	case BackendMemory:
		return NewMemoryStore(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, backend)
	}
}
