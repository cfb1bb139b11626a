package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/playlists"
)

// OpenSession starts a paused playback session over a playlist, or over the
// whole catalog when playlistID is empty. startSongID selects the first
// track; when it is empty or not queued, playback starts at the top.
//
// A playlist session follows later additions and removals on that playlist
// until the session is closed.
func (a *App) OpenSession(ctx context.Context, playlistID, startSongID string) (*playback.Session, error) {
	opts := append([]playback.Option{playback.WithDurations(a.catalog.SongDuration)}, a.sessionOptions...)
	var (
		session  *playback.Session
		unfollow func()
	)
	if playlistID == "" {
		session = playback.NewSession(a.catalog.SongIDs(), opts...)
	} else {
		var ok bool
		unfollow, ok = a.playlists.Follow(ctx, playlistID, func(p playlists.Playlist) playlists.Observer {
			session = playback.NewSession(p.SongIDs, opts...)
			return followPlaylist(session, playlistID)
		})
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlaylist, playlistID)
		}
	}
	ids := session.Queue()
	if startSongID != "" {
		for i, id := range ids {
			if id == startSongID {
				_ = session.JumpTo(i)
				break
			}
		}
	}

	a.setCurrent(session)

	sub := session.Subscribe()
	go func() {
		<-sub.Done
		if unfollow != nil {
			unfollow()
		}
		a.clearCurrent(session)
	}()

	a.logger.Debug("playback session opened",
		zap.String("session", session.ID()),
		zap.String("playlist", playlistID),
		zap.Int("songs", len(ids)),
	)
	return session, nil
}

// CurrentSession returns the most recently opened session that is still
// open, or nil.
func (a *App) CurrentSession() *playback.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *App) setCurrent(s *playback.Session) {
	a.mu.Lock()
	a.current = s
	a.mu.Unlock()
}

func (a *App) clearCurrent(s *playback.Session) {
	a.mu.Lock()
	if a.current == s {
		a.current = nil
	}
	a.mu.Unlock()
}

// followPlaylist mirrors membership changes of playlistID into session.
func followPlaylist(session *playback.Session, playlistID string) playlists.Observer {
	return playlists.ObserverFunc(func(c playlists.Change) {
		if c.Playlist.ID != playlistID {
			return
		}
		switch c.Kind {
		case playlists.ChangeSongAdded:
			session.Append(c.SongID)
		case playlists.ChangeSongRemoved:
			session.Remove(c.SongID)
		}
	})
}
