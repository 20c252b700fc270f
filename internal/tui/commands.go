package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sourcegraph/conc/pool"

	"github.com/mmcdole/marquee/internal/domain"
)

// Command factories for async metadata loads. None of them touch local state.

const metadataTimeout = 30 * time.Second

// LoadTrendingCmd fetches the home screen rows in parallel
func LoadTrendingCmd(client domain.MetadataClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metadataTimeout)
		defer cancel()

		var msg TrendingLoadedMsg
		p := pool.New().WithErrors().WithContext(ctx)
		p.Go(func(ctx context.Context) error {
			movies, err := client.TrendingMovies(ctx)
			msg.Movies = movies
			return err
		})
		p.Go(func(ctx context.Context) error {
			shows, err := client.TrendingShows(ctx)
			msg.Shows = shows
			return err
		})
		if err := p.Wait(); err != nil {
			return ErrMsg{Err: err, Context: "loading trending titles"}
		}
		return msg
	}
}

// LoadShowCmd fetches show details before its episodes view opens.
// focusEpisode selects an episode once the season arrives (0 for none).
func LoadShowCmd(client domain.MetadataClient, showID, seasonNumber, focusEpisode int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metadataTimeout)
		defer cancel()

		show, err := client.Show(ctx, showID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading show"}
		}
		return ShowLoadedMsg{Show: show, SeasonNumber: seasonNumber, FocusEpisode: focusEpisode}
	}
}

// LoadSeasonCmd fetches one season's episodes
func LoadSeasonCmd(client domain.MetadataClient, show domain.Show, seasonNumber int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metadataTimeout)
		defer cancel()

		season, err := client.Season(ctx, show.ID, seasonNumber)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading season"}
		}
		return SeasonLoadedMsg{Show: show, Season: season}
	}
}

// LoadMovieCmd fetches a movie's details
func LoadMovieCmd(client domain.MetadataClient, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metadataTimeout)
		defer cancel()

		movie, err := client.Movie(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading movie"}
		}
		return MovieLoadedMsg{Movie: movie}
	}
}

// LoadRailEpisodesCmd resolves the episodes recorded on the rail.
// Partial results are delivered; only a total failure is an error.
func LoadRailEpisodesCmd(client domain.MetadataClient, refs []domain.EpisodeRef) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metadataTimeout)
		defer cancel()

		episodes, err := client.Episodes(ctx, refs)
		if err != nil && len(episodes) == 0 {
			return ErrMsg{Err: err, Context: "loading episode names"}
		}
		return RailEpisodesLoadedMsg{Episodes: episodes}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status id after a delay
func ClearStatusCmd(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
