package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// TrendingLoadedMsg carries the home screen's movie and show rows
type TrendingLoadedMsg struct {
	Movies []domain.Movie
	Shows  []domain.Show
}

// SeasonLoadedMsg signals that a season's episodes have been loaded
type SeasonLoadedMsg struct {
	Show   domain.Show
	Season *domain.Season
}

// ShowLoadedMsg signals that show details arrived for the episodes view
type ShowLoadedMsg struct {
	Show         *domain.Show
	SeasonNumber int
	FocusEpisode int
}

// MovieLoadedMsg carries movie details fetched when a movie is started
type MovieLoadedMsg struct {
	Movie *domain.Movie
}

// RailEpisodesLoadedMsg carries the episodes recorded on the rail
type RailEpisodesLoadedMsg struct {
	Episodes []domain.Episode
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message set under ID
type ClearStatusMsg struct {
	ID int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
