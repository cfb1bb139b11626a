// Package playlists owns the user's playlists: the bundled seed until the
// first write, then the on-device overlay, which fully replaces the seed.
package playlists

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/idgen"
	"github.com/llehouerou/tunedeck/internal/recordlog"
	"github.com/llehouerou/tunedeck/internal/storage"
)

// OverlayName is the overlay and seed name for playlists.
const OverlayName = "playlists"

// ErrEmptyName is returned when creating a playlist without a name.
var ErrEmptyName = errors.New("playlist name is empty")

// Playlist is an ordered, duplicate-free list of song ids.
type Playlist struct {
	ID          string   `json:"playlistId"`
	Name        string   `json:"playlistName"`
	Description string   `json:"description"`
	CoverURL    string   `json:"coverUrl"`
	SongIDs     []string `json:"songIds"`
	CreateTime  int64    `json:"createTime"`
	SongCount   int      `json:"songCount"`
	IsPrivate   bool     `json:"isPrivate,omitempty"`
}

// Contains reports whether songID is a member.
func (p Playlist) Contains(songID string) bool {
	return slices.Contains(p.SongIDs, songID)
}

func (p Playlist) clone() Playlist {
	p.SongIDs = slices.Clone(p.SongIDs)
	if p.SongIDs == nil {
		p.SongIDs = []string{}
	}
	return p
}

// Outcome classifies the result of adding a song.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeAlreadyPresent
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "Applied"
	case OutcomeAlreadyPresent:
		return "AlreadyPresent"
	case OutcomeNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Ok reports whether the song is a member after the call.
func (o Outcome) Ok() bool {
	return o == OutcomeApplied || o == OutcomeAlreadyPresent
}

// Store provides playlist reads and mutations. Every mutation rewrites the
// whole overlay while holding the write lock; observers run after the write
// has succeeded.
type Store struct {
	mu     sync.RWMutex
	doc    *recordlog.Document[Playlist]
	ids    *idgen.Generator
	now    func() time.Time
	logger *zap.Logger

	notifyMu  sync.Mutex
	obsMu     sync.RWMutex
	observers map[int]Observer
	nextObs   int
}

// New creates a store over backend. seeds and logger may be nil.
func New(backend storage.Backend, seeds recordlog.SeedSource, ids *idgen.Generator, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ids == nil {
		ids = idgen.New()
	}
	return &Store{
		doc:       recordlog.NewDocument[Playlist](OverlayName, backend, seeds, logger),
		ids:       ids,
		now:       time.Now,
		logger:    logger,
		observers: make(map[int]Observer),
	}
}

// LoadPlaylists returns every playlist in display order.
func (s *Store) LoadPlaylists(ctx context.Context) []Playlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadLocked(ctx)
}

// Playlist returns the playlist with id.
func (s *Store) Playlist(ctx context.Context, id string) (Playlist, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pls := s.loadLocked(ctx)
	if i := indexOf(pls, id); i >= 0 {
		return pls[i], true
	}
	return Playlist{}, false
}

// CreatePlaylist adds an empty playlist and returns it once persisted.
func (s *Store) CreatePlaylist(ctx context.Context, name string, isPrivate bool) (Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Playlist{}, ErrEmptyName
	}

	var created Playlist
	err := s.update(ctx, func(pls []Playlist) ([]Playlist, *Change) {
		created = Playlist{
			ID:         s.ids.Next(idgen.KindPlaylist),
			Name:       name,
			SongIDs:    []string{},
			CreateTime: s.now().UnixMilli(),
			IsPrivate:  isPrivate,
		}
		return append(pls, created), &Change{Kind: ChangeCreated, Playlist: created}
	})
	if err != nil {
		return Playlist{}, err
	}
	s.logger.Info("playlist created", zap.String("id", created.ID), zap.String("name", name))
	return created.clone(), nil
}

// DeletePlaylist removes a playlist. The favorites playlist cannot be
// deleted. Returns false when nothing was removed.
func (s *Store) DeletePlaylist(ctx context.Context, id string) (bool, error) {
	if id == FavoritesID {
		return false, nil
	}

	deleted := false
	err := s.update(ctx, func(pls []Playlist) ([]Playlist, *Change) {
		i := indexOf(pls, id)
		if i < 0 {
			return pls, nil
		}
		removed := pls[i]
		deleted = true
		return slices.Delete(pls, i, i+1), &Change{Kind: ChangeDeleted, Playlist: removed}
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// EnsurePlaylistTracked creates the playlist with the given members when it
// does not exist yet. An existing playlist is left untouched.
func (s *Store) EnsurePlaylistTracked(ctx context.Context, id, name string, songIDs []string) error {
	return s.update(ctx, func(pls []Playlist) ([]Playlist, *Change) {
		if indexOf(pls, id) >= 0 {
			return pls, nil
		}
		p := newTracked(id, name, songIDs, s.now())
		return append(pls, p), &Change{Kind: ChangeCreated, Playlist: p}
	})
}

func newTracked(id, name string, songIDs []string, now time.Time) Playlist {
	return Playlist{
		ID:         id,
		Name:       name,
		SongIDs:    dedupe(songIDs),
		CreateTime: now.UnixMilli(),
	}
}

// update runs fn on the current playlists under the write lock. fn returns
// the new list and a change, or a nil change when nothing should be written.
// Observers are captured before the write lock is released and notified
// under notifyMu, so changes reach them in write order.
func (s *Store) update(ctx context.Context, fn func([]Playlist) ([]Playlist, *Change)) error {
	s.mu.Lock()
	current, err := s.doc.Current(ctx)
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("playlist read failed, write skipped", zap.Error(err))
		return err
	}
	pls, change := fn(normalize(current))
	if change == nil {
		s.mu.Unlock()
		return nil
	}
	if err := s.doc.Save(ctx, normalize(pls)); err != nil {
		s.mu.Unlock()
		s.logger.Warn("playlist write failed",
			zap.String("playlist", change.Playlist.ID),
			zap.Stringer("change", change.Kind),
			zap.Error(err),
		)
		return err
	}
	observers := s.observerList()
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	change.Playlist = change.Playlist.clone()
	change.Playlist.SongCount = len(change.Playlist.SongIDs)
	for _, o := range observers {
		o.PlaylistChanged(*change)
	}
	return nil
}

func (s *Store) loadLocked(ctx context.Context) []Playlist {
	return normalize(s.doc.Load(ctx))
}

// normalize drops duplicate members and refreshes derived counts.
func normalize(pls []Playlist) []Playlist {
	out := make([]Playlist, len(pls))
	for i, p := range pls {
		p.SongIDs = dedupe(p.SongIDs)
		p.SongCount = len(p.SongIDs)
		out[i] = p
	}
	return out
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func indexOf(pls []Playlist, id string) int {
	for i, p := range pls {
		if p.ID == id {
			return i
		}
	}
	return -1
}
