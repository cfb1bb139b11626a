// Package nowplaying is the interactive player screen: it drives a playback
// session with a simulated clock and renders the current track.
package nowplaying

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

const (
	// seekStep is the fraction of a track moved by one seek key press.
	seekStep = 0.05
	// fallbackLength paces tracks whose duration is unknown.
	fallbackLength = 3 * time.Minute
	defaultWidth   = 64
)

// SongLookup resolves queued song ids.
type SongLookup interface {
	Song(id string) (catalog.Song, bool)
}

// Favorites toggles and reports favorite membership.
type Favorites interface {
	ToggleFavorite(ctx context.Context, songID string) (bool, error)
	IsFavorite(ctx context.Context, songID string) bool
}

type tickMsg time.Time

// favoriteMsg carries the favorite state of a song, after a lookup or a
// toggle.
type favoriteMsg struct {
	songID    string
	favorited bool
	toggled   bool
	err       error
}

type Model struct {
	session   *playback.Session
	songs     SongLookup
	favorites Favorites

	interval time.Duration
	style    catalog.PlayerStyle
	theme    *styles.Theme
	keys     keyMap
	help     help.Model
	width    int

	songID    string
	favorite  bool
	status    string
	statusErr bool
}

type Option func(*Model)

// WithInterval sets the simulated clock period.
func WithInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithStyle selects the player style shown and its theme.
func WithStyle(s catalog.PlayerStyle) Option {
	return func(m *Model) {
		m.style = s
		m.theme = styles.For(s.Category)
	}
}

// New creates a now-playing screen for session.
func New(session *playback.Session, songs SongLookup, favorites Favorites, opts ...Option) Model {
	m := Model{
		session:   session,
		songs:     songs,
		favorites: favorites,
		interval:  time.Second,
		theme:     styles.T(),
		keys:      defaultKeys(),
		help:      help.New(),
		width:     defaultWidth,
	}
	if s, ok := catalog.FindPlayerStyle(catalog.DefaultStyleID); ok {
		m.style = s
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.songID = session.NowPlaying().SongID
	return m
}

// Init starts the clock and looks up the favorite state of the first track.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.interval), m.lookupFavorite(m.songID))
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tickMsg:
		m.session.Tick(m.tickDelta())
		cmds = append(cmds, tickCmd(m.interval))

	case favoriteMsg:
		m.handleFavorite(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.session.Pause()
			return m, tea.Quit
		}
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if id := m.session.NowPlaying().SongID; id != m.songID {
		m.songID = id
		m.favorite = false
		cmds = append(cmds, m.lookupFavorite(id))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.session.Toggle()
	case key.Matches(msg, m.keys.Next):
		m.session.Next()
	case key.Matches(msg, m.keys.Previous):
		m.session.Previous()
	case key.Matches(msg, m.keys.Mode):
		m.setStatus("Mode: "+m.session.CycleMode().String(), false)
	case key.Matches(msg, m.keys.SeekBack):
		m.session.Seek(m.session.NowPlaying().Progress - seekStep)
	case key.Matches(msg, m.keys.SeekForward):
		m.session.Seek(m.session.NowPlaying().Progress + seekStep)
	case key.Matches(msg, m.keys.Favorite):
		return m.toggleFavorite(m.songID)
	}
	return nil
}

func (m *Model) handleFavorite(msg favoriteMsg) {
	if msg.err != nil {
		m.setStatus(errmsg.Format(errmsg.OpFavoriteToggle, msg.err), true)
		return
	}
	if msg.songID != m.songID {
		return
	}
	m.favorite = msg.favorited
	if !msg.toggled {
		return
	}
	if msg.favorited {
		m.setStatus("Added to favorites", false)
	} else {
		m.setStatus("Removed from favorites", false)
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// tickDelta is the track fraction one clock period covers.
func (m Model) tickDelta() float64 {
	length := m.session.NowPlaying().Duration
	if length <= 0 {
		length = fallbackLength
	}
	return float64(m.interval) / float64(length)
}

func (m Model) lookupFavorite(songID string) tea.Cmd {
	if songID == "" || m.favorites == nil {
		return nil
	}
	favorites := m.favorites
	return func() tea.Msg {
		return favoriteMsg{
			songID:    songID,
			favorited: favorites.IsFavorite(context.Background(), songID),
		}
	}
}

func (m Model) toggleFavorite(songID string) tea.Cmd {
	if songID == "" || m.favorites == nil {
		return nil
	}
	favorites := m.favorites
	return func() tea.Msg {
		favorited, err := favorites.ToggleFavorite(context.Background(), songID)
		return favoriteMsg{songID: songID, favorited: favorited, toggled: true, err: err}
	}
}
