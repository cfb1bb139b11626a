package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/activity"
	"github.com/llehouerou/tunedeck/internal/idgen"
	"github.com/llehouerou/tunedeck/internal/playlists"
)

// ToggleFavorite adds the song to favorites, or removes it when already
// there. Adding appends a song_to_favorites collection record.
func (a *App) ToggleFavorite(ctx context.Context, songID string) (bool, error) {
	song, err := a.song(songID)
	if err != nil {
		return false, err
	}

	favorited, err := a.playlists.ToggleFavorite(ctx, songID)
	if err != nil {
		return false, err
	}
	if favorited {
		a.collect(ctx, activity.ContentSongToFavorites, song.ID, song.Name)
	}
	return favorited, nil
}

// IsFavorite reports whether songID is in the favorites playlist.
func (a *App) IsFavorite(ctx context.Context, songID string) bool {
	return a.playlists.IsFavorite(ctx, songID)
}

// AddToPlaylist adds a catalog song to a playlist. An unknown song is
// reported as OutcomeNotFound, like an unknown playlist.
func (a *App) AddToPlaylist(ctx context.Context, playlistID, songID string) (playlists.Outcome, error) {
	song, ok := a.catalog.Song(songID)
	if !ok {
		return playlists.OutcomeNotFound, nil
	}

	outcome, err := a.playlists.AddSong(ctx, playlistID, songID)
	if err != nil {
		return outcome, err
	}
	if outcome == playlists.OutcomeApplied {
		a.collect(ctx, activity.ContentSong, song.ID, song.Name)
	}
	return outcome, nil
}

// RemoveFromPlaylist removes a song and appends a deletion record.
func (a *App) RemoveFromPlaylist(ctx context.Context, playlistID, songID string) (bool, error) {
	removed, err := a.playlists.RemoveSong(ctx, playlistID, songID)
	if err != nil || !removed {
		return removed, err
	}

	rec := activity.SongDeletion{
		RecordID:   a.ids.Next(idgen.KindSongDeletion),
		PlaylistID: playlistID,
		SongID:     songID,
		Timestamp:  a.nowMillis(),
	}
	if err := a.records.Deletions.Append(ctx, rec); err != nil {
		a.logger.Warn("deletion record not saved",
			zap.String("playlist", playlistID),
			zap.String("song", songID),
			zap.Error(err),
		)
	}
	return true, nil
}

// CollectPlaylist records that the user saved a playlist.
func (a *App) CollectPlaylist(ctx context.Context, playlistID string) error {
	p, ok := a.playlists.Playlist(ctx, playlistID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlaylist, playlistID)
	}
	return a.records.Collections.Append(ctx, a.collection(activity.ContentPlaylist, p.ID, p.Name))
}

// CreatePlaylist creates an empty playlist.
func (a *App) CreatePlaylist(ctx context.Context, name string, isPrivate bool) (playlists.Playlist, error) {
	return a.playlists.CreatePlaylist(ctx, name, isPrivate)
}

// DeletePlaylist deletes a user playlist.
func (a *App) DeletePlaylist(ctx context.Context, playlistID string) (bool, error) {
	return a.playlists.DeletePlaylist(ctx, playlistID)
}

func (a *App) collection(contentType, id, name string) activity.Collection {
	return activity.Collection{
		CollectionID:   a.ids.Next(idgen.KindCollection),
		ContentType:    contentType,
		ContentID:      id,
		ContentName:    name,
		CollectionTime: a.nowMillis(),
		IsSuccess:      true,
	}
}

// collect appends a collection record for a mutation that already
// succeeded. A failed append is logged; the mutation stands.
func (a *App) collect(ctx context.Context, contentType, id, name string) {
	if err := a.records.Collections.Append(ctx, a.collection(contentType, id, name)); err != nil {
		a.logger.Warn("collection record not saved",
			zap.String("content_type", contentType),
			zap.String("content_id", id),
			zap.Error(err),
		)
	}
}
