package tui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// Tab is a top-level screen
type Tab int

const (
	TabHome Tab = iota
	TabWatchlist
	TabDevices
)

var tabNames = []string{"Home", "Watchlist", "Devices"}

func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "Unknown"
}

// HomePane is the focused section of the home tab
type HomePane int

const (
	PaneRail HomePane = iota
	PaneMovies
	PaneShows
)

const (
	statusTimeout = 4 * time.Second
	tickInterval  = 100 * time.Millisecond

	// Chrome: tab bar (with margin) plus footer
	ChromeHeight = 3
)

// Options tunes presentation details that come from configuration
type Options struct {
	RailWidth     int
	ToastDuration time.Duration
}

// episodesView is the drill-in screen for a single show
type episodesView struct {
	show     domain.Show
	season   int
	focus    int
	loading  bool
	grid     components.BentoGrid
	backdrop string // resolved backdrop URL, "" until the show loads
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	Watchlist domain.WatchlistCommands
	Progress  domain.ProgressCommands
	Metadata  domain.MetadataClient // nil when no API key is configured
	Logger    *slog.Logger

	// UI Components
	Rail    components.Rail
	Movies  components.PosterGrid
	Shows   components.PosterGrid
	Saved   components.PosterGrid
	Devices components.DeviceCompatibility
	Toast   components.Toast

	// Navigation
	Tab      Tab
	Pane     HomePane
	episodes *episodesView

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	statusID     int
	Loading      bool
	SpinnerFrame int
	ShowHelp     bool

	keys KeyMap
}

// NewModel creates a new application model and loads local state into it
func NewModel(
	watchlist domain.WatchlistCommands,
	progress domain.ProgressCommands,
	metadata domain.MetadataClient,
	logger *slog.Logger,
	opts Options,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		Watchlist: watchlist,
		Progress:  progress,
		Metadata:  metadata,
		Logger:    logger,
		Rail:      components.NewRail(opts.RailWidth),
		Movies:    components.NewPosterGrid("Trending Movies"),
		Shows:     components.NewPosterGrid("Trending TV Shows"),
		Saved:     components.NewPosterGrid("My Watchlist"),
		Devices:   components.NewDeviceCompatibility(),
		Toast:     components.NewToast(opts.ToastDuration),
		keys:      DefaultKeyMap(),
	}
	if metadata == nil {
		m.StatusMsg = "Metadata unavailable: set metadata.api_key to browse trending titles"
		m.StatusIsErr = true
	} else {
		m.Loading = true
	}
	m.refreshLocal()
	m.applyFocus()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(tickInterval)}
	if m.Metadata != nil {
		cmds = append(cmds, LoadTrendingCmd(m.Metadata), m.railEpisodesCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case TrendingLoadedMsg:
		m.Loading = false
		movies := make([]domain.ListItem, len(msg.Movies))
		for i := range msg.Movies {
			movies[i] = &msg.Movies[i]
		}
		shows := make([]domain.ListItem, len(msg.Shows))
		for i := range msg.Shows {
			shows[i] = &msg.Shows[i]
		}
		m.Movies.SetItems(movies)
		m.Shows.SetItems(shows)
		return m, nil

	case ShowLoadedMsg:
		if m.episodes == nil || m.episodes.show.ID != msg.Show.ID {
			return m, nil
		}
		m.episodes.show = *msg.Show
		m.episodes.backdrop = m.Metadata.BackdropURL(msg.Show.BackdropPath, "")
		season := msg.SeasonNumber
		if msg.Show.SeasonCount > 0 {
			season = max(1, min(season, msg.Show.SeasonCount))
		}
		m.episodes.season = season
		m.episodes.focus = msg.FocusEpisode
		return m, LoadSeasonCmd(m.Metadata, m.episodes.show, season)

	case SeasonLoadedMsg:
		if m.episodes == nil || m.episodes.show.ID != msg.Show.ID || msg.Season.SeasonNumber != m.episodes.season {
			return m, nil
		}
		m.episodes.loading = false
		m.Loading = false
		items := make([]components.BentoItem, len(msg.Season.Episodes))
		for i, ep := range msg.Season.Episodes {
			items[i] = components.BentoItem{
				Episode:        ep,
				ShowID:         msg.Show.ID,
				ShowName:       msg.Show.Name,
				ShowPosterPath: msg.Show.PosterPath,
			}
		}
		m.episodes.grid.SetItems(items)
		if m.episodes.focus > 0 {
			m.episodes.grid.FocusEpisode(m.episodes.focus)
			m.episodes.focus = 0
		}
		return m, nil

	case MovieLoadedMsg:
		return m, m.setStatus("Now watching "+movieSummary(*msg.Movie), false)

	case RailEpisodesLoadedMsg:
		for _, ep := range msg.Episodes {
			m.Rail.SetEpisodeName(ep.Ref(), ep.Name)
		}
		return m, nil

	case ErrMsg:
		m.Loading = false
		if m.episodes != nil {
			m.episodes.loading = false
		}
		m.Logger.Warn("metadata request failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		// A newer status restarted the timer
		if msg.ID != m.statusID {
			return m, nil
		}
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case components.ToastExpiredMsg:
		m.Toast = m.Toast.Update(msg)
		return m, nil

	case components.ToggleWatchlistMsg:
		return m.toggleWatchlist(msg.Item)

	case components.OpenItemMsg:
		return m.openItem(msg.Item)

	case components.RemoveProgressMsg:
		if m.Progress.Remove(msg.Key.ID, msg.Key.Type) {
			m.refreshLocal()
			return m, m.setStatus("Removed from Continue Watching", false)
		}
		return m, nil

	case components.ResumeMsg:
		return m.resume(msg.Entry)

	case components.PlayEpisodeMsg:
		return m.playEpisode(msg.Item)
	}

	return m, nil
}

// toggleWatchlist flips a card's membership and raises the matching toast
func (m Model) toggleWatchlist(item domain.ListItem) (tea.Model, tea.Cmd) {
	input := domain.WatchlistInput(item)
	added := m.Watchlist.Toggle(input)
	m.refreshLocal()

	title, description := components.WatchlistToast(input.Title, added)
	return m, m.Toast.Show(title, description, false)
}

// openItem drills into a show, or starts a movie
func (m Model) openItem(item domain.ListItem) (tea.Model, tea.Cmd) {
	k := item.GetKey()
	if k.Type == domain.MediaTypeTV {
		return m.openShow(domain.Show{ID: k.ID, Name: item.GetTitle(), PosterPath: item.GetPosterPath()}, 1, 0)
	}

	if _, ok := m.Progress.Get(k.ID, k.Type); !ok {
		m.Progress.Upsert(domain.WatchProgressEntry{
			ID:         k.ID,
			Type:       k.Type,
			Title:      item.GetTitle(),
			PosterPath: item.GetPosterPath(),
		})
		m.refreshLocal()
	}
	status := m.setStatus(fmt.Sprintf("Now watching %s", item.GetTitle()), false)
	if m.Metadata == nil {
		return m, status
	}
	return m, tea.Batch(status, LoadMovieCmd(m.Metadata, k.ID))
}

// resume continues a rail entry: shows reopen at the recorded episode
func (m Model) resume(entry domain.WatchProgressEntry) (tea.Model, tea.Cmd) {
	if entry.Type == domain.MediaTypeTV {
		season, focus := 1, 0
		if entry.EpisodeInfo != nil {
			season = entry.EpisodeInfo.SeasonNumber
			focus = entry.EpisodeInfo.EpisodeNumber
		}
		return m.openShow(domain.Show{ID: entry.ID, Name: entry.Title, PosterPath: entry.PosterPath}, season, focus)
	}
	return m, m.setStatus(fmt.Sprintf("Resuming %s at %.0f%%", entry.Title, entry.Progress), false)
}

// playEpisode records the start of an episode unless the entry already points at it
func (m Model) playEpisode(item components.BentoItem) (tea.Model, tea.Cmd) {
	info := item.Episode.Info()
	existing, ok := m.Progress.Get(item.ShowID, domain.MediaTypeTV)
	if ok && existing.EpisodeInfo != nil && *existing.EpisodeInfo == info {
		return m, m.setStatus(fmt.Sprintf("Resuming %s %s at %.0f%%", item.ShowName, info.Code(), existing.Progress), false)
	}

	m.Progress.Upsert(domain.WatchProgressEntry{
		ID:          item.ShowID,
		Type:        domain.MediaTypeTV,
		Title:       item.ShowName,
		PosterPath:  item.ShowPosterPath,
		Progress:    0,
		EpisodeInfo: &info,
	})
	m.Rail.SetEpisodeName(item.Episode.Ref(), item.Episode.Name)
	m.refreshLocal()
	return m, m.setStatus(fmt.Sprintf("Now watching %s %s", item.ShowName, info.Code()), false)
}

// railEpisodesCmd looks up episode names the rail does not know yet
func (m Model) railEpisodesCmd() tea.Cmd {
	if m.Metadata == nil {
		return nil
	}
	var refs []domain.EpisodeRef
	for _, e := range m.Progress.List() {
		if ref, ok := e.EpisodeRef(); ok && !m.Rail.HasEpisodeName(ref) {
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		return nil
	}
	return LoadRailEpisodesCmd(m.Metadata, refs)
}

// movieSummary renders "Title (Year) · 2h 15m" with whatever details are known
func movieSummary(movie domain.Movie) string {
	s := movie.Title
	if year := movie.GetYear(); year > 0 {
		s += fmt.Sprintf(" (%d)", year)
	}
	if movie.Runtime > 0 {
		s += fmt.Sprintf(" · %dh %02dm", movie.Runtime/60, movie.Runtime%60)
	}
	return s
}

// refreshLocal re-reads watchlist and progress into the components
func (m *Model) refreshLocal() {
	entries := m.Watchlist.List()
	listed := make(map[domain.Key]bool, len(entries))
	saved := make([]domain.ListItem, len(entries))
	for i, e := range entries {
		listed[e.Key()] = true
		saved[i] = e
	}
	m.Movies.SetListed(listed)
	m.Shows.SetListed(listed)
	m.Saved.SetListed(listed)
	m.Saved.SetItems(saved)

	m.Rail.SetItems(m.Progress.List())
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	m.statusID++
	return ClearStatusCmd(m.statusID, statusTimeout)
}
