package playlists

import (
	"context"
	"slices"
)

// The favorites playlist is created on the first favorite action.
const (
	FavoritesID   = "my_favorites"
	FavoritesName = "My Favorites"
)

// IsFavorite checks if a song is in the favorites playlist.
func (s *Store) IsFavorite(ctx context.Context, songID string) bool {
	return s.IsMember(ctx, FavoritesID, songID)
}

// FavoriteSongIDs returns the favorites as a set for efficient lookup.
func (s *Store) FavoriteSongIDs(ctx context.Context) map[string]bool {
	ids, _ := s.SongIDs(ctx, FavoritesID)
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// ToggleFavorite adds a song to favorites if not there, removes it if it
// already is, creating the favorites playlist when missing.
// Returns the new favorite status (true = now favorited).
func (s *Store) ToggleFavorite(ctx context.Context, songID string) (bool, error) {
	favorited := false
	err := s.update(ctx, func(pls []Playlist) ([]Playlist, *Change) {
		i := indexOf(pls, FavoritesID)
		if i < 0 {
			pls = append(pls, newTracked(FavoritesID, FavoritesName, nil, s.now()))
			i = len(pls) - 1
		}

		fav := &pls[i]
		if j := slices.Index(fav.SongIDs, songID); j >= 0 {
			fav.SongIDs = slices.Delete(fav.SongIDs, j, j+1)
			return pls, &Change{Kind: ChangeSongRemoved, Playlist: *fav, SongID: songID}
		}
		favorited = true
		fav.SongIDs = append(fav.SongIDs, songID)
		return pls, &Change{Kind: ChangeSongAdded, Playlist: *fav, SongID: songID}
	})
	if err != nil {
		return false, err
	}
	return favorited, nil
}
