package tmdb

import (
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

const dateLayout = "2006-01-02"

// parseDate parses TMDB's YYYY-MM-DD dates; blanks and junk become the zero time
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// MapMovies converts TMDB movie results to domain movies
func MapMovies(results []MovieResult) []domain.Movie {
	movies := make([]domain.Movie, 0, len(results))
	for _, r := range results {
		movies = append(movies, MapMovie(r))
	}
	return movies
}

// MapMovie converts a single TMDB movie result
func MapMovie(r MovieResult) domain.Movie {
	return domain.Movie{
		ID:           r.ID,
		Title:        r.Title,
		Overview:     r.Overview,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
		ReleaseDate:  parseDate(r.ReleaseDate),
		VoteAverage:  r.VoteAverage,
		Runtime:      r.Runtime,
	}
}

// MapShows converts TMDB series results to domain shows
func MapShows(results []ShowResult) []domain.Show {
	shows := make([]domain.Show, 0, len(results))
	for _, r := range results {
		shows = append(shows, MapShow(r))
	}
	return shows
}

// MapShow converts a single TMDB series result
func MapShow(r ShowResult) domain.Show {
	return domain.Show{
		ID:           r.ID,
		Name:         r.Name,
		Overview:     r.Overview,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
		FirstAirDate: parseDate(r.FirstAirDate),
		VoteAverage:  r.VoteAverage,
		SeasonCount:  r.NumberOfSeasons,
	}
}

// MapSeason converts a season payload; showID is not part of the payload
func MapSeason(showID int, r SeasonResult) domain.Season {
	episodes := make([]domain.Episode, 0, len(r.Episodes))
	for _, e := range r.Episodes {
		ep := MapEpisode(e)
		if ep.ShowID == 0 {
			ep.ShowID = showID
		}
		episodes = append(episodes, ep)
	}
	return domain.Season{
		ShowID:       showID,
		SeasonNumber: r.SeasonNumber,
		Name:         r.Name,
		Overview:     r.Overview,
		PosterPath:   r.PosterPath,
		AirDate:      parseDate(r.AirDate),
		Episodes:     episodes,
	}
}

// MapEpisode converts a single episode payload
func MapEpisode(r EpisodeResult) domain.Episode {
	return domain.Episode{
		ID:            r.ID,
		ShowID:        r.ShowID,
		Name:          r.Name,
		Overview:      r.Overview,
		StillPath:     r.StillPath,
		AirDate:       parseDate(r.AirDate),
		VoteAverage:   r.VoteAverage,
		SeasonNumber:  r.SeasonNumber,
		EpisodeNumber: r.EpisodeNumber,
	}
}
