package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sourcegraph/conc/pool"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultAttempts    = 3
	defaultRetryDelay  = 500 * time.Millisecond
	defaultConcurrency = 4
	userAgent          = "Marquee/1.0"
)

// Image sizes used by the UI
const (
	PosterSmall   = "w342"
	PosterLarge   = "w500"
	BackdropLarge = "w780"
)

// Client implements domain.MetadataClient for TMDB v3
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	language     string
	httpClient   *http.Client
	logger       *slog.Logger

	attempts    uint
	retryDelay  time.Duration
	concurrency int
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry sets the attempt count and the initial backoff delay
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.retryDelay = delay
	}
}

// WithConcurrency bounds the number of in-flight requests in batch lookups
func WithConcurrency(n int) Option {
	return func(c *Client) { c.concurrency = n }
}

// WithLanguage sets the language query parameter
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// NewClient creates a new TMDB API client
func NewClient(baseURL, imageBaseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		apiKey:       apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:      logger,
		attempts:    defaultAttempts,
		retryDelay:  defaultRetryDelay,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PosterURL returns the poster image URL at the given size ("" for an empty path)
func (c *Client) PosterURL(path, size string) string {
	return c.imageURL(path, size, PosterLarge)
}

// BackdropURL returns the backdrop image URL at the given size ("" for an empty path)
func (c *Client) BackdropURL(path, size string) string {
	return c.imageURL(path, size, BackdropLarge)
}

func (c *Client) imageURL(path, size, fallback string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = fallback
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.imageBaseURL + "/" + size + path
}

// statusError carries a non-2xx HTTP status
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("unexpected status code %d: %s", e.code, e.message)
	}
	return fmt.Sprintf("unexpected status code: %d", e.code)
}

// isTransient reports whether a failed request is worth retrying
func isTransient(err error) bool {
	if errors.Is(err, domain.ErrServerOffline) {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	return false
}

// doRequest performs an authenticated GET with retries on transient failures
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	var body []byte
	err := retry.Do(
		func() error {
			var err error
			body, err = c.doOnce(ctx, reqURL, path)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying tmdb request", "path", path, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) doOnce(ctx context.Context, reqURL, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	// Path only: the query string carries the API key.
	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrItemNotFound
	case resp.StatusCode != http.StatusOK:
		var apiErr ErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "message", apiErr.StatusMessage)
		return nil, &statusError{code: resp.StatusCode, message: apiErr.StatusMessage}
	}

	return body, nil
}

// getJSON fetches path and decodes the response into dest
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// TrendingMovies returns this week's trending movies
func (c *Client) TrendingMovies(ctx context.Context) ([]domain.Movie, error) {
	var resp PagedResponse[MovieResult]
	if err := c.getJSON(ctx, "/trending/movie/week", nil, &resp); err != nil {
		return nil, err
	}
	return MapMovies(resp.Results), nil
}

// TrendingShows returns this week's trending series
func (c *Client) TrendingShows(ctx context.Context) ([]domain.Show, error) {
	var resp PagedResponse[ShowResult]
	if err := c.getJSON(ctx, "/trending/tv/week", nil, &resp); err != nil {
		return nil, err
	}
	return MapShows(resp.Results), nil
}

// Movie returns the details of a single movie
func (c *Client) Movie(ctx context.Context, id int) (*domain.Movie, error) {
	var r MovieResult
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", id), nil, &r); err != nil {
		return nil, err
	}
	m := MapMovie(r)
	return &m, nil
}

// Show returns the details of a single series
func (c *Client) Show(ctx context.Context, id int) (*domain.Show, error) {
	var r ShowResult
	if err := c.getJSON(ctx, fmt.Sprintf("/tv/%d", id), nil, &r); err != nil {
		return nil, err
	}
	s := MapShow(r)
	return &s, nil
}

// Season returns a season with its episodes
func (c *Client) Season(ctx context.Context, showID, seasonNumber int) (*domain.Season, error) {
	var r SeasonResult
	path := fmt.Sprintf("/tv/%d/season/%d", showID, seasonNumber)
	if err := c.getJSON(ctx, path, nil, &r); err != nil {
		return nil, err
	}
	s := MapSeason(showID, r)
	return &s, nil
}

// Episode returns a single episode
func (c *Client) Episode(ctx context.Context, ref domain.EpisodeRef) (*domain.Episode, error) {
	var r EpisodeResult
	path := fmt.Sprintf("/tv/%d/season/%d/episode/%d", ref.ShowID, ref.SeasonNumber, ref.EpisodeNumber)
	if err := c.getJSON(ctx, path, nil, &r); err != nil {
		return nil, err
	}
	ep := MapEpisode(r)
	if ep.ShowID == 0 {
		ep.ShowID = ref.ShowID
	}
	return &ep, nil
}

// Episodes fetches refs concurrently with a bounded pool.
// Successful results keep the order of refs; failures are joined into the error.
func (c *Client) Episodes(ctx context.Context, refs []domain.EpisodeRef) ([]domain.Episode, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	type indexed struct {
		idx int
		ep  domain.Episode
		ok  bool
	}

	// Errored results are collected too so that the pool keeps every
	// successful one; failures are filtered out after Wait.
	p := pool.NewWithResults[indexed]().
		WithContext(ctx).
		WithCollectErrored().
		WithMaxGoroutines(max(1, c.concurrency))

	for i, ref := range refs {
		i, ref := i, ref
		p.Go(func(ctx context.Context) (indexed, error) {
			ep, err := c.Episode(ctx, ref)
			if err != nil {
				return indexed{idx: i}, fmt.Errorf("%s: %w", ref, err)
			}
			return indexed{idx: i, ep: *ep, ok: true}, nil
		})
	}

	results, err := p.Wait()
	sort.Slice(results, func(a, b int) bool { return results[a].idx < results[b].idx })

	episodes := make([]domain.Episode, 0, len(results))
	for _, r := range results {
		if r.ok {
			episodes = append(episodes, r.ep)
		}
	}
	if err != nil {
		c.logger.Warn("some episodes failed to load", "requested", len(refs), "loaded", len(episodes), "error", err)
	}
	return episodes, err
}
