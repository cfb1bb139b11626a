// Package app wires the library store, activity logs, and playback sessions
// together and implements the user-facing actions on top of them.
//
// One App is built at process start and passed to whatever needs it.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/activity"
	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/config"
	"github.com/llehouerou/tunedeck/internal/idgen"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/playlists"
	"github.com/llehouerou/tunedeck/internal/storage"
)

var (
	ErrUnknownSong     = errors.New("unknown song")
	ErrUnknownArtist   = errors.New("unknown artist")
	ErrUnknownPlaylist = errors.New("unknown playlist")
	ErrUnknownStyle    = errors.New("unknown playback style")
	ErrEmptyComment    = errors.New("comment is empty")
)

// Options configures an App. Backend and Catalog are required.
type Options struct {
	Backend      storage.Backend
	Catalog      *catalog.Catalog
	Logger       *zap.Logger
	Clock        func() time.Time
	SearchLimit  int
	DefaultStyle string

	// SessionOptions are applied to every playback session.
	SessionOptions []playback.Option
}

// App is the process-wide container.
type App struct {
	catalog   *catalog.Catalog
	backend   storage.Backend
	playlists *playlists.Store
	records   *activity.Logs
	history   *activity.SearchHistory
	ids       *idgen.Generator
	now       func() time.Time
	logger    *zap.Logger

	defaultStyle   string
	sessionOptions []playback.Option

	mu      sync.Mutex
	current *playback.Session
}

// New builds an App from explicit dependencies.
func New(opts Options) (*App, error) {
	if opts.Backend == nil {
		return nil, errors.New("app: nil storage backend")
	}
	if opts.Catalog == nil {
		return nil, errors.New("app: nil catalog")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	defaultStyle := opts.DefaultStyle
	if defaultStyle == "" {
		defaultStyle = catalog.DefaultStyleID
	}

	ids := idgen.NewWithClock(now)
	records := activity.NewLogs(opts.Backend, opts.Catalog, logger)

	return &App{
		catalog:        opts.Catalog,
		backend:        opts.Backend,
		playlists:      playlists.New(opts.Backend, opts.Catalog, ids, logger.Named("playlists")),
		records:        records,
		history:        activity.NewSearchHistory(records.Searches, opts.SearchLimit),
		ids:            ids,
		now:            now,
		logger:         logger,
		defaultStyle:   defaultStyle,
		sessionOptions: opts.SessionOptions,
	}, nil
}

// Open builds an App from configuration: the bundled catalog plus the
// configured storage backend under the data directory.
func Open(cfg *config.Config, logger *zap.Logger) (*App, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	dataDir := cfg.GetDataDir()
	kind := storage.Kind(cfg.GetStorageBackend())
	backend, err := storage.Open(kind, dataDir)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", kind, err)
	}
	if logger != nil {
		logger.Debug("storage opened",
			zap.String("backend", string(kind)),
			zap.String("data_dir", dataDir),
		)
	}

	return New(Options{
		Backend:      backend,
		Catalog:      cat,
		Logger:       logger,
		SearchLimit:  cfg.GetSearchLimit(),
		DefaultStyle: cfg.GetDefaultStyle(),
	})
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.backend.Close()
}

// Catalog returns the read-only catalog.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// Playlists returns the library store.
func (a *App) Playlists() *playlists.Store {
	return a.playlists
}

// Records returns the activity logs.
func (a *App) Records() *activity.Logs {
	return a.records
}

func (a *App) nowMillis() int64 {
	return a.now().UnixMilli()
}

func (a *App) song(id string) (catalog.Song, error) {
	s, ok := a.catalog.Song(id)
	if !ok {
		return catalog.Song{}, fmt.Errorf("%w: %s", ErrUnknownSong, id)
	}
	return s, nil
}
