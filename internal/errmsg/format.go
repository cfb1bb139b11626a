// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"context"
	"errors"
	"fmt"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playlist operations
	OpPlaylistLoad    Op = "load playlists"
	OpPlaylistCreate  Op = "create playlist"
	OpPlaylistDelete  Op = "delete playlist"
	OpPlaylistAdd     Op = "add song to playlist"
	OpPlaylistRemove  Op = "remove song from playlist"
	OpPlaylistCollect Op = "collect playlist"

	// Favorites
	OpFavoriteToggle Op = "update favorites"

	// Activity records
	OpSearch         Op = "search"
	OpHistoryClear   Op = "clear search history"
	OpDownload       Op = "record download"
	OpComment        Op = "send comment"
	OpArtistFollow   Op = "follow artist"
	OpArtistUnfollow Op = "unfollow artist"
	OpStyleChange    Op = "change playback style"

	// Playback
	OpPlaybackOpen Op = "open playback session"
	OpPlaybackJump Op = "jump to track"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format renders err for display, prefixed by the failed operation.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return "Failed to " + string(op) + ": " + reason(err)
}

// FormatWith is Format with the subject of the operation quoted after it.
func FormatWith(op Op, subject string, err error) string {
	if subject == "" {
		return Format(op, err)
	}
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s '%s': %s", op, subject, reason(err))
}

// reason hides context plumbing behind a plain word.
func reason(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	default:
		return err.Error()
	}
}
