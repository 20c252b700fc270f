package domain

import (
	"fmt"
	"time"
)

// Movie is the metadata descriptor for a feature film
type Movie struct {
	ID           int
	Title        string
	Overview     string
	PosterPath   string
	BackdropPath string
	ReleaseDate  time.Time
	VoteAverage  float64
	Runtime      int // minutes; only set by detail lookups
}

// Show is the metadata descriptor for a TV series
type Show struct {
	ID           int
	Name         string
	Overview     string
	PosterPath   string
	BackdropPath string
	FirstAirDate time.Time
	VoteAverage  float64
	SeasonCount  int
}

// Season groups the episodes of a show
type Season struct {
	ShowID       int
	SeasonNumber int
	Name         string
	Overview     string
	PosterPath   string
	AirDate      time.Time
	Episodes     []Episode
}

// Episode is a single episode of a show
type Episode struct {
	ID            int
	ShowID        int
	Name          string
	Overview      string
	StillPath     string
	AirDate       time.Time
	VoteAverage   float64
	SeasonNumber  int
	EpisodeNumber int
}

// Info returns the episode's position as EpisodeInfo
func (e Episode) Info() EpisodeInfo {
	return EpisodeInfo{SeasonNumber: e.SeasonNumber, EpisodeNumber: e.EpisodeNumber}
}

// EpisodeRef addresses a single episode for batch lookups
type EpisodeRef struct {
	ShowID        int
	SeasonNumber  int
	EpisodeNumber int
}

// Ref returns the address of the episode
func (e Episode) Ref() EpisodeRef {
	return EpisodeRef{ShowID: e.ShowID, SeasonNumber: e.SeasonNumber, EpisodeNumber: e.EpisodeNumber}
}

func (r EpisodeRef) String() string {
	return fmt.Sprintf("tv:%d:s%d:e%d", r.ShowID, r.SeasonNumber, r.EpisodeNumber)
}

// ListItem is the polymorphic interface for titles shown as poster cards.
// Movie and Show implement it directly.
type ListItem interface {
	GetKey() Key
	GetTitle() string
	GetPosterPath() string
	GetYear() int
	GetRating() float64
}

func (m *Movie) GetKey() Key           { return Key{ID: m.ID, Type: MediaTypeMovie} }
func (m *Movie) GetTitle() string      { return m.Title }
func (m *Movie) GetPosterPath() string { return m.PosterPath }
func (m *Movie) GetRating() float64    { return m.VoteAverage }
func (m *Movie) GetYear() int {
	if m.ReleaseDate.IsZero() {
		return 0
	}
	return m.ReleaseDate.Year()
}

func (s *Show) GetKey() Key           { return Key{ID: s.ID, Type: MediaTypeTV} }
func (s *Show) GetTitle() string      { return s.Name }
func (s *Show) GetPosterPath() string { return s.PosterPath }
func (s *Show) GetRating() float64    { return s.VoteAverage }
func (s *Show) GetYear() int {
	if s.FirstAirDate.IsZero() {
		return 0
	}
	return s.FirstAirDate.Year()
}

// WatchlistInput builds the watchlist payload for a card
func WatchlistInput(item ListItem) WatchlistItemInput {
	k := item.GetKey()
	return WatchlistItemInput{
		ID:         k.ID,
		Type:       k.Type,
		Title:      item.GetTitle(),
		PosterPath: item.GetPosterPath(),
	}
}
