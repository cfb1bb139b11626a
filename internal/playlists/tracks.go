package playlists

import (
	"context"
	"slices"
)

// AddSong appends songID to a playlist. Adding an existing member is a no-op
// reported as OutcomeAlreadyPresent; an unknown playlist is OutcomeNotFound.
// On a write error the playlist is unchanged.
func (s *Store) AddSong(ctx context.Context, playlistID, songID string) (Outcome, error) {
	outcome := OutcomeNotFound
	err := s.update(ctx, func(pls []Playlist) ([]Playlist, *Change) {
		i := indexOf(pls, playlistID)
		if i < 0 {
			return pls, nil
		}
		if pls[i].Contains(songID) {
			outcome = OutcomeAlreadyPresent
			return pls, nil
		}
		outcome = OutcomeApplied
		pls[i].SongIDs = append(pls[i].SongIDs, songID)
		return pls, &Change{Kind: ChangeSongAdded, Playlist: pls[i], SongID: songID}
	})
	if err != nil {
		return OutcomeNotFound, err
	}
	return outcome, nil
}

// RemoveSong removes songID from a playlist. Returns false when the playlist
// does not exist or the song is not a member.
func (s *Store) RemoveSong(ctx context.Context, playlistID, songID string) (bool, error) {
	removed := false
	err := s.update(ctx, func(pls []Playlist) ([]Playlist, *Change) {
		i := indexOf(pls, playlistID)
		if i < 0 {
			return pls, nil
		}
		j := slices.Index(pls[i].SongIDs, songID)
		if j < 0 {
			return pls, nil
		}
		removed = true
		pls[i].SongIDs = slices.Delete(pls[i].SongIDs, j, j+1)
		return pls, &Change{Kind: ChangeSongRemoved, Playlist: pls[i], SongID: songID}
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// IsMember reports whether songID belongs to the playlist.
func (s *Store) IsMember(ctx context.Context, playlistID, songID string) bool {
	p, ok := s.Playlist(ctx, playlistID)
	return ok && p.Contains(songID)
}

// SongIDs returns the ordered members of a playlist.
func (s *Store) SongIDs(ctx context.Context, playlistID string) ([]string, bool) {
	p, ok := s.Playlist(ctx, playlistID)
	if !ok {
		return nil, false
	}
	return p.SongIDs, true
}
