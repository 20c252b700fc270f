package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
)

// documents is the serialized form of a State, keyed by document name.
type documents map[string][]byte

// encodeState serializes each collection as its own JSON array.
// Nil collections are written as [] so a reader can tell "empty" from "missing".
func encodeState(state domain.State) (documents, error) {
	watchlist := state.Watchlist
	if watchlist == nil {
		watchlist = []domain.WatchlistEntry{}
	}
	progress := state.Progress
	if progress == nil {
		progress = []domain.WatchProgressEntry{}
	}

	wl, err := json.Marshal(watchlist)
	if err != nil {
		return nil, fmt.Errorf("encode watchlist: %w", err)
	}
	wp, err := json.Marshal(progress)
	if err != nil {
		return nil, fmt.Errorf("encode watch progress: %w", err)
	}
	return documents{
		domain.DocWatchlist:     wl,
		domain.DocWatchProgress: wp,
	}, nil
}

// decodeState rebuilds a State. Each collection is decoded on its own; a
// collection that is missing or unreadable comes back empty.
func decodeState(docs documents, logger *slog.Logger) domain.State {
	return domain.State{
		Watchlist: decodeWatchlist(docs[domain.DocWatchlist], logger),
		Progress:  decodeProgress(docs[domain.DocWatchProgress], logger),
	}
}

// decodeEntries splits a JSON array into elements and decodes each one,
// skipping elements that fail. A payload that is not an array yields nil.
func decodeEntries[T any](doc string, data []byte, logger *slog.Logger) []T {
	if len(data) == 0 {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("discarding corrupt document", "doc", doc, "error", err, "bytes", len(data))
		return nil
	}

	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			logger.Warn("dropping unreadable entry", "doc", doc, "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func decodeWatchlist(data []byte, logger *slog.Logger) []domain.WatchlistEntry {
	entries := decodeEntries[domain.WatchlistEntry](domain.DocWatchlist, data, logger)
	if len(entries) == 0 {
		return nil
	}

	// First occurrence wins; it holds the original insertion slot.
	seen := make(map[domain.Key]bool, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if !e.Type.Valid() {
			logger.Warn("dropping entry without media type", "doc", domain.DocWatchlist, "id", e.ID)
			continue
		}
		if seen[e.Key()] {
			continue
		}
		seen[e.Key()] = true
		out = append(out, e)
	}
	return out
}

func decodeProgress(data []byte, logger *slog.Logger) []domain.WatchProgressEntry {
	entries := decodeEntries[domain.WatchProgressEntry](domain.DocWatchProgress, data, logger)
	if len(entries) == 0 {
		return nil
	}

	// Keep one entry per key: the most recently updated, in the first slot.
	index := make(map[domain.Key]int, len(entries))
	out := make([]domain.WatchProgressEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Type.Valid() {
			logger.Warn("dropping entry without media type", "doc", domain.DocWatchProgress, "id", e.ID)
			continue
		}
		if e.Type == domain.MediaTypeMovie {
			e.EpisodeInfo = nil
		}
		if i, ok := index[e.Key()]; ok {
			if e.Timestamp.After(out[i].Timestamp) {
				out[i] = e
			}
			continue
		}
		index[e.Key()] = len(out)
		out = append(out, e)
	}
	return out
}
