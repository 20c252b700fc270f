package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// watchlistRecord is the --json shape of a watchlist entry
type watchlistRecord struct {
	domain.WatchlistEntry
	PosterURL string `json:"poster_url,omitempty"`
}

// progressRecord is the --json shape of a progress entry
type progressRecord struct {
	domain.WatchProgressEntry
	PosterURL string `json:"poster_url,omitempty"`
}

func watchlistRecords(entries []domain.WatchlistEntry, images domain.ImageResolver) []watchlistRecord {
	out := make([]watchlistRecord, len(entries))
	for i, e := range entries {
		out[i] = watchlistRecord{WatchlistEntry: e, PosterURL: images.PosterURL(e.PosterPath, tmdb.PosterSmall)}
	}
	return out
}

func progressRecords(entries []domain.WatchProgressEntry, images domain.ImageResolver) []progressRecord {
	out := make([]progressRecord, len(entries))
	for i, e := range entries {
		out[i] = progressRecord{WatchProgressEntry: e, PosterURL: images.PosterURL(e.PosterPath, tmdb.PosterSmall)}
	}
	return out
}

// parseKey reads the "<movie|tv> <id>" argument pair shared by most commands
func parseKey(typeArg, idArg string) (domain.Key, error) {
	t, err := domain.ParseMediaType(typeArg)
	if err != nil {
		return domain.Key{}, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(idArg))
	if err != nil || id <= 0 {
		return domain.Key{}, fmt.Errorf("invalid id %q: must be a positive integer", idArg)
	}
	return domain.Key{ID: id, Type: t}, nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
