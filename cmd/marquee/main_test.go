package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
)

func writeTestConfig(t *testing.T, backend string) string {
	t.Helper()

	base := t.TempDir()
	cfg := adapter.DefaultConfig()
	cfg.Storage.Backend = backend
	cfg.Storage.Dir = filepath.Join(base, "data")
	cfg.Logging.File = filepath.Join(base, "logs", "marquee.log")

	path := filepath.Join(base, "config.yaml")
	require.NoError(t, adapter.SaveConfig(cfg, path))
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestWatchlistCommands(t *testing.T) {
	for _, backend := range []string{"bolt", "file"} {
		backend := backend
		t.Run(backend, func(t *testing.T) {
			cfg := writeTestConfig(t, backend)

			out, err := runCLI(t, cfg, "watchlist", "add", "movie", "603", "The", "Matrix")
			require.NoError(t, err)
			assert.Contains(t, out, "The Matrix has been added to your watchlist.")

			out, err = runCLI(t, cfg, "watchlist", "add", "movie", "603", "The Matrix")
			require.NoError(t, err)
			assert.Contains(t, out, "already on your watchlist")

			_, err = runCLI(t, cfg, "watchlist", "add", "tv", "1399", "Game of Thrones", "--poster", "/got.jpg")
			require.NoError(t, err)

			out, err = runCLI(t, cfg, "watchlist", "list")
			require.NoError(t, err)
			assert.Contains(t, out, "The Matrix")
			assert.Contains(t, out, "Game of Thrones")

			out, err = runCLI(t, cfg, "watchlist", "list", "--json")
			require.NoError(t, err)
			var entries []domain.WatchlistEntry
			require.NoError(t, json.Unmarshal([]byte(out), &entries))
			require.Len(t, entries, 2)
			assert.Equal(t, 603, entries[0].ID)
			assert.Equal(t, "/got.jpg", entries[1].PosterPath)

			var records []map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &records))
			assert.NotContains(t, records[0], "poster_url")
			assert.Equal(t, "https://image.tmdb.org/t/p/w342/got.jpg", records[1]["poster_url"])

			out, err = runCLI(t, cfg, "watchlist", "search", "thrones", "--json")
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal([]byte(out), &entries))
			require.Len(t, entries, 1)
			assert.Equal(t, 1399, entries[0].ID)

			out, err = runCLI(t, cfg, "watchlist", "remove", "movie", "603")
			require.NoError(t, err)
			assert.Contains(t, out, "removed from your watchlist")

			out, err = runCLI(t, cfg, "watchlist", "remove", "movie", "603")
			require.NoError(t, err)
			assert.Contains(t, out, "is not on your watchlist")
		})
	}
}

func TestWatchlistListEmpty(t *testing.T) {
	cfg := writeTestConfig(t, "file")

	out, err := runCLI(t, cfg, "watchlist", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Watchlist is empty")
}

func TestProgressSetReplacesEntry(t *testing.T) {
	cfg := writeTestConfig(t, "bolt")

	out, err := runCLI(t, cfg, "progress", "set", "tv", "1399", "10",
		"--title", "Game of Thrones", "--season", "1", "--episode", "1", "--poster", "/got.jpg")
	require.NoError(t, err)
	assert.Contains(t, out, "Game of Thrones S1 E1 at 10%")

	// Title and episode carry over from the recorded entry
	_, err = runCLI(t, cfg, "progress", "set", "tv", "1399", "95")
	require.NoError(t, err)

	out, err = runCLI(t, cfg, "progress", "list", "--json")
	require.NoError(t, err)
	var entries []domain.WatchProgressEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 95.0, entries[0].Progress)
	assert.Equal(t, "Game of Thrones", entries[0].Title)
	require.NotNil(t, entries[0].EpisodeInfo)
	assert.Equal(t, domain.EpisodeInfo{SeasonNumber: 1, EpisodeNumber: 1}, *entries[0].EpisodeInfo)
	assert.Contains(t, out, `"poster_url": "https://image.tmdb.org/t/p/w342/got.jpg"`)

	out, err = runCLI(t, cfg, "progress", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "S1 E1")
	assert.Contains(t, out, "95%")

	out, err = runCLI(t, cfg, "progress", "remove", "tv", "1399")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed progress for tv:1399")

	out, err = runCLI(t, cfg, "progress", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing in progress")
}

func TestProgressSetValidation(t *testing.T) {
	cfg := writeTestConfig(t, "file")

	tests := []struct {
		name string
		args []string
	}{
		{"percent above range", []string{"movie", "603", "140", "--title", "The Matrix"}},
		{"percent not a number", []string{"movie", "603", "half", "--title", "The Matrix"}},
		{"season without episode", []string{"tv", "1399", "10", "--title", "GoT", "--season", "1"}},
		{"episode on a movie", []string{"movie", "603", "10", "--title", "The Matrix", "--season", "1", "--episode", "1"}},
		{"missing title", []string{"movie", "603", "10"}},
		{"bad id", []string{"movie", "abc", "10", "--title", "The Matrix"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, cfg, append([]string{"progress", "set"}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestInvalidMediaTypeIsRejected(t *testing.T) {
	cfg := writeTestConfig(t, "file")

	_, err := runCLI(t, cfg, "watchlist", "add", "podcast", "1", "Serial")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidMediaType))
}

func TestUnknownBackendFails(t *testing.T) {
	cfg := writeTestConfig(t, "cassette")

	_, err := runCLI(t, cfg, "watchlist", "list")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownBackend))
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, writeTestConfig(t, "memory"), "version")
	require.NoError(t, err)
	assert.Equal(t, "marquee dev\n", out)
}

func TestRootRequiresTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	_, err := runCLI(t, writeTestConfig(t, "memory"))
	assert.ErrorIs(t, err, errNoTerminal)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.yaml")

	out, err := runCLI(t, path, "config", "init", "--api-key", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = runCLI(t, path, "config", "init")
	assert.Error(t, err)

	out, err = runCLI(t, path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "storage.backend")
	assert.Contains(t, out, "(set)")
	assert.NotContains(t, out, "secret")
}
