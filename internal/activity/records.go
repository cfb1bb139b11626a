// Package activity defines the user activity records and their logs.
package activity

import (
	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/recordlog"
	"github.com/llehouerou/tunedeck/internal/storage"
)

// Overlay names, one per record kind.
const (
	CollectionRecords   = "collection_records"
	DownloadRecords     = "download_records"
	FollowRecords       = "artist_follow_records"
	CommentRecords      = "comment_records"
	SongDeletionRecords = "song_deletion_records"
	SearchRecords       = "search_records"
	StyleRecords        = "playback_style_records"
)

// Collection content types.
const (
	ContentSong            = "song"
	ContentPlaylist        = "playlist"
	ContentArtist          = "artist"
	ContentSongToFavorites = "song_to_favorites"
)

// Follow operations.
const (
	OpFollow   = "follow"
	OpUnfollow = "unfollow"
)

// Times are unix milliseconds.

type Collection struct {
	CollectionID   string `json:"collectionId"`
	ContentType    string `json:"contentType"`
	ContentID      string `json:"contentId"`
	ContentName    string `json:"contentName"`
	CollectionTime int64  `json:"collectionTime"`
	IsSuccess      bool   `json:"isSuccess"`
}

type Download struct {
	DownloadID   string `json:"downloadId"`
	SongID       string `json:"songId"`
	SongName     string `json:"songName"`
	DownloadTime int64  `json:"downloadTime"`
	Quality      string `json:"quality"`
	IsSuccess    bool   `json:"isSuccess"`
}

type Follow struct {
	RecordID      string `json:"recordId"`
	ArtistID      string `json:"artistId"`
	ArtistName    string `json:"artistName"`
	OperationType string `json:"operationType"`
	OperationTime int64  `json:"operationTime"`
	IsSuccess     bool   `json:"isSuccess"`
}

type Comment struct {
	RecordID  string `json:"recordId"`
	CommentID string `json:"commentId"`
	SongID    string `json:"songId"`
	SongName  string `json:"songName"`
	Artist    string `json:"artist"`
	Content   string `json:"content"`
	UserID    string `json:"userId"`
	SendTime  int64  `json:"sendTime"`
	IsSuccess bool   `json:"isSuccess"`
}

type SongDeletion struct {
	RecordID   string `json:"recordId"`
	PlaylistID string `json:"playlistId"`
	SongID     string `json:"songId"`
	Timestamp  int64  `json:"timestamp"`
}

type StyleChange struct {
	RecordID   string `json:"recordId"`
	StyleID    string `json:"styleId"`
	ChangeTime int64  `json:"changeTime"`
	IsSuccess  bool   `json:"isSuccess"`
}

type Search struct {
	SearchID    string `json:"searchId"`
	Keyword     string `json:"keyword"`
	SearchTime  int64  `json:"searchTime"`
	ResultCount int    `json:"resultCount"`
	IsSuccess   bool   `json:"isSuccess"`
}

// Logs bundles one record log per kind over a shared backend.
type Logs struct {
	Collections *recordlog.Log[Collection]
	Downloads   *recordlog.Log[Download]
	Follows     *recordlog.Log[Follow]
	Comments    *recordlog.Log[Comment]
	Deletions   *recordlog.Log[SongDeletion]
	Styles      *recordlog.Log[StyleChange]
	Searches    *recordlog.Log[Search]
}

// NewLogs creates the record logs. seeds may be nil.
func NewLogs(backend storage.Backend, seeds recordlog.SeedSource, logger *zap.Logger) *Logs {
	return &Logs{
		Collections: recordlog.New[Collection](CollectionRecords, backend, seeds, logger),
		Downloads:   recordlog.New[Download](DownloadRecords, backend, seeds, logger),
		Follows:     recordlog.New[Follow](FollowRecords, backend, seeds, logger),
		Comments:    recordlog.New[Comment](CommentRecords, backend, seeds, logger),
		Deletions:   recordlog.New[SongDeletion](SongDeletionRecords, backend, seeds, logger),
		Styles:      recordlog.New[StyleChange](StyleRecords, backend, seeds, logger),
		Searches:    recordlog.New[Search](SearchRecords, backend, seeds, logger),
	}
}

// FollowedArtists returns the artists whose latest successful record is a
// follow, in the order they were last followed.
func FollowedArtists(records []Follow) []string {
	latest := make(map[string]int, len(records))
	for i, r := range records {
		if r.IsSuccess {
			latest[r.ArtistID] = i
		}
	}

	var ids []string
	for i, r := range records {
		if r.IsSuccess && latest[r.ArtistID] == i && r.OperationType == OpFollow {
			ids = append(ids, r.ArtistID)
		}
	}
	return ids
}

// CurrentStyle returns the style of the latest successful change, or def.
func CurrentStyle(records []StyleChange, def string) string {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].IsSuccess && records[i].StyleID != "" {
			return records[i].StyleID
		}
	}
	return def
}
