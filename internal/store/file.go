package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/spf13/afero"
)

// FileStore implements domain.StateStore as one JSON file per collection.
// Each file is replaced by rename, so a reader sees either the old or the new
// document. Only documents whose bytes changed are rewritten.
type FileStore struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger

	mu   sync.Mutex
	last documents // bytes last read from or written to disk
}

// NewFileStore creates a store rooted at dir on the given filesystem.
// A nil fs means the OS filesystem.
func NewFileStore(fsys afero.Fs, dir string, logger *slog.Logger) (*FileStore, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	logger.Debug("opened state store", "backend", BackendFile, "dir", dir)
	return &FileStore{fs: fsys, dir: dir, logger: logger, last: documents{}}, nil
}

func (s *FileStore) path(doc string) string {
	return filepath.Join(s.dir, doc+".json")
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) Load() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := documents{}
	for _, name := range []string{domain.DocWatchlist, domain.DocWatchProgress} {
		data, err := afero.ReadFile(s.fs, s.path(name))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("failed to read document", "doc", name, "error", err)
			}
			continue
		}
		docs[name] = data
	}
	s.last = docs
	return decodeState(docs, s.logger)
}

func (s *FileStore) Save(state domain.State) error {
	docs, err := encodeState(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range []string{domain.DocWatchlist, domain.DocWatchProgress} {
		data := docs[name]
		if prev, ok := s.last[name]; ok && bytes.Equal(prev, data) {
			continue
		}
		if err := s.writeAtomic(name, data); err != nil {
			return err
		}
		s.last[name] = data
	}
	return nil
}

// writeAtomic writes data to a temp file in the target directory and renames it into place.
func (s *FileStore) writeAtomic(doc string, data []byte) error {
	tmp, err := afero.TempFile(s.fs, s.dir, "."+doc+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", doc, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", doc, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to sync %s: %w", doc, err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", doc, err)
	}

	if err := s.fs.Rename(tmpName, s.path(doc)); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", doc, err)
	}
	return nil
}
