package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/llehouerou/tunedeck/internal/activity"
	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/idgen"
)

// Download qualities.
const (
	QualityStandard = "standard"
	QualityHigh     = "high"
	QualityLossless = "lossless"
)

// Qualities lists the accepted download qualities.
func Qualities() []string {
	return []string{QualityStandard, QualityHigh, QualityLossless}
}

// RecordDownload appends a download record. An empty quality means standard.
func (a *App) RecordDownload(ctx context.Context, songID, quality string) (activity.Download, error) {
	song, err := a.song(songID)
	if err != nil {
		return activity.Download{}, err
	}
	quality = strings.ToLower(strings.TrimSpace(quality))
	if quality == "" {
		quality = QualityStandard
	}
	if !slices.Contains(Qualities(), quality) {
		return activity.Download{}, fmt.Errorf("unknown quality %q", quality)
	}

	rec := activity.Download{
		DownloadID:   a.ids.Next(idgen.KindDownload),
		SongID:       song.ID,
		SongName:     song.Name,
		DownloadTime: a.nowMillis(),
		Quality:      quality,
		IsSuccess:    true,
	}
	if err := a.records.Downloads.Append(ctx, rec); err != nil {
		return activity.Download{}, err
	}
	return rec, nil
}

// Downloads returns every download record.
func (a *App) Downloads(ctx context.Context) []activity.Download {
	return a.records.Downloads.LoadAll(ctx)
}

// RecordComment appends a comment on a song.
func (a *App) RecordComment(ctx context.Context, songID, userID, text string) (activity.Comment, error) {
	song, err := a.song(songID)
	if err != nil {
		return activity.Comment{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return activity.Comment{}, ErrEmptyComment
	}

	rec := activity.Comment{
		RecordID:  a.ids.Next(idgen.KindComment),
		CommentID: uuid.NewString(),
		SongID:    song.ID,
		SongName:  song.Name,
		Artist:    song.Artist,
		Content:   text,
		UserID:    userID,
		SendTime:  a.nowMillis(),
		IsSuccess: true,
	}
	if err := a.records.Comments.Append(ctx, rec); err != nil {
		return activity.Comment{}, err
	}
	return rec, nil
}

// Comments returns the comments on a song, oldest first. An empty songID
// returns every comment.
func (a *App) Comments(ctx context.Context, songID string) []activity.Comment {
	all := a.records.Comments.LoadAll(ctx)
	if songID == "" {
		return all
	}
	var out []activity.Comment
	for _, c := range all {
		if c.SongID == songID {
			out = append(out, c)
		}
	}
	return out
}

// FollowArtist records a follow. Following a followed artist is a no-op.
func (a *App) FollowArtist(ctx context.Context, artistID string) (bool, error) {
	return a.setFollow(ctx, artistID, activity.OpFollow)
}

// UnfollowArtist records an unfollow. Unfollowing an artist that is not
// followed is a no-op.
func (a *App) UnfollowArtist(ctx context.Context, artistID string) (bool, error) {
	return a.setFollow(ctx, artistID, activity.OpUnfollow)
}

func (a *App) setFollow(ctx context.Context, artistID, op string) (bool, error) {
	artist, ok := a.catalog.Artist(artistID)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownArtist, artistID)
	}

	changed := false
	err := a.records.Follows.Update(ctx, func(recs []activity.Follow) []activity.Follow {
		following := slices.Contains(activity.FollowedArtists(recs), artistID)
		if following == (op == activity.OpFollow) {
			return recs
		}
		changed = true
		return append(recs, activity.Follow{
			RecordID:      a.ids.Next(idgen.KindFollow),
			ArtistID:      artist.ID,
			ArtistName:    artist.Name,
			OperationType: op,
			OperationTime: a.nowMillis(),
			IsSuccess:     true,
		})
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// FollowedArtists returns the followed catalog artists, oldest follow first.
func (a *App) FollowedArtists(ctx context.Context) []catalog.Artist {
	ids := activity.FollowedArtists(a.records.Follows.LoadAll(ctx))
	out := make([]catalog.Artist, 0, len(ids))
	for _, id := range ids {
		if artist, ok := a.catalog.Artist(id); ok {
			out = append(out, artist)
		}
	}
	return out
}

// ChangePlaybackStyle records a new now-playing style.
func (a *App) ChangePlaybackStyle(ctx context.Context, styleID string) error {
	if _, ok := catalog.FindPlayerStyle(styleID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStyle, styleID)
	}
	return a.records.Styles.Append(ctx, activity.StyleChange{
		RecordID:   a.ids.Next(idgen.KindStyleChange),
		StyleID:    styleID,
		ChangeTime: a.nowMillis(),
		IsSuccess:  true,
	})
}

// CurrentPlaybackStyle returns the latest recorded style, or the default.
func (a *App) CurrentPlaybackStyle(ctx context.Context) string {
	return activity.CurrentStyle(a.records.Styles.LoadAll(ctx), a.defaultStyle)
}
