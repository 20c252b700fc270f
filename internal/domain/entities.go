package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MediaType distinguishes the two kinds of titles the metadata API knows about.
// Serialized as "movie" or "tv".
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ParseMediaType converts user or wire input into a MediaType
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case MediaTypeMovie:
		return MediaTypeMovie, nil
	case MediaTypeTV:
		return MediaTypeTV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMediaType, s)
	}
}

// Valid reports whether t is one of the known media types
func (t MediaType) Valid() bool {
	return t == MediaTypeMovie || t == MediaTypeTV
}

// Label returns the human-readable name used in listings
func (t MediaType) Label() string {
	switch t {
	case MediaTypeMovie:
		return "Movie"
	case MediaTypeTV:
		return "TV"
	default:
		return "Unknown"
	}
}

// UnmarshalJSON rejects anything but the known media types so that
// malformed records never reach the services.
func (t *MediaType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMediaType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Key identifies a title in the metadata system.
// Both watchlist and progress entries are unique per Key.
type Key struct {
	ID   int
	Type MediaType
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.Type, k.ID)
}

// WatchlistItemInput is what callers hand to the watchlist when adding a title.
type WatchlistItemInput struct {
	ID         int
	Type       MediaType
	Title      string
	PosterPath string
}

func (in WatchlistItemInput) Key() Key { return Key{ID: in.ID, Type: in.Type} }

// WatchlistEntry is a saved intent to watch a title later.
type WatchlistEntry struct {
	ID         int       `json:"id"`
	Type       MediaType `json:"type"`
	Title      string    `json:"title"`
	PosterPath string    `json:"poster_path"`
	AddedAt    time.Time `json:"added_at"`
}

func (e WatchlistEntry) Key() Key { return Key{ID: e.ID, Type: e.Type} }

// EpisodeInfo locates an episode within a show
type EpisodeInfo struct {
	SeasonNumber  int `json:"season_number"`
	EpisodeNumber int `json:"episode_number"`
}

// Code returns the compact episode label (e.g., "S1 E5")
func (e EpisodeInfo) Code() string {
	return fmt.Sprintf("S%d E%d", e.SeasonNumber, e.EpisodeNumber)
}

// WatchProgressEntry records how far the user got through a title.
// Progress is a percentage; callers keep it within 0-100.
type WatchProgressEntry struct {
	ID          int          `json:"id"`
	Type        MediaType    `json:"type"`
	Title       string       `json:"title"`
	PosterPath  string       `json:"poster_path"`
	Progress    float64      `json:"progress"`
	EpisodeInfo *EpisodeInfo `json:"episode_info,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

func (e WatchProgressEntry) Key() Key { return Key{ID: e.ID, Type: e.Type} }

// ListKey identifies a rail item: identity plus last-updated time.
func (e WatchProgressEntry) ListKey() string {
	return fmt.Sprintf("%s-%d-%d", e.Type, e.ID, e.Timestamp.UnixMilli())
}

// EpisodeRef addresses the recorded episode of a TV entry
func (e WatchProgressEntry) EpisodeRef() (EpisodeRef, bool) {
	if e.Type != MediaTypeTV || e.EpisodeInfo == nil {
		return EpisodeRef{}, false
	}
	return EpisodeRef{ShowID: e.ID, SeasonNumber: e.EpisodeInfo.SeasonNumber, EpisodeNumber: e.EpisodeInfo.EpisodeNumber}, true
}

// EpisodeLabel returns "S1 E5" for TV entries carrying episode context, "" otherwise
func (e WatchProgressEntry) EpisodeLabel() string {
	if e.Type != MediaTypeTV || e.EpisodeInfo == nil {
		return ""
	}
	return e.EpisodeInfo.Code()
}

// State is the whole persisted document set. The zero value is the empty default.
type State struct {
	Watchlist []WatchlistEntry
	Progress  []WatchProgressEntry
}

// Clone returns a deep copy so callers can mutate without aliasing store internals
func (s State) Clone() State {
	out := State{}
	if s.Watchlist != nil {
		out.Watchlist = append([]WatchlistEntry(nil), s.Watchlist...)
	}
	if s.Progress != nil {
		out.Progress = make([]WatchProgressEntry, len(s.Progress))
		for i, p := range s.Progress {
			if p.EpisodeInfo != nil {
				info := *p.EpisodeInfo
				p.EpisodeInfo = &info
			}
			out.Progress[i] = p
		}
	}
	return out
}

// ListItem interface implementation for WatchlistEntry

func (e WatchlistEntry) GetKey() Key           { return e.Key() }
func (e WatchlistEntry) GetTitle() string      { return e.Title }
func (e WatchlistEntry) GetPosterPath() string { return e.PosterPath }
func (e WatchlistEntry) GetYear() int          { return 0 }
func (e WatchlistEntry) GetRating() float64    { return 0 }
