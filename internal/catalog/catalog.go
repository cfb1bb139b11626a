// Package catalog exposes the bundled, read-only music datasets.
//
// The catalog is parsed once at startup and never mutated. It also serves the
// bundled seed documents that overlays fall back to before their first write.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"time"
)

//go:embed data/*.json
var bundled embed.FS

const dataDir = "data"

// Seed document names.
const (
	SeedSongs          = "songs"
	SeedAlbums         = "albums"
	SeedArtists        = "artists"
	SeedMusicVideos    = "music_videos"
	SeedPlaylists      = "playlists"
	SeedPlaybackStyles = "playback_style_records"
)

// Song is a catalog track. Duration is in milliseconds.
type Song struct {
	ID           string `json:"songId"`
	Name         string `json:"songName"`
	Artist       string `json:"artist"`
	ArtistID     string `json:"artistId,omitempty"`
	Album        string `json:"album"`
	AlbumID      string `json:"albumId,omitempty"`
	Duration     int64  `json:"duration"`
	CoverURL     string `json:"coverUrl"`
	Lyrics       string `json:"lyrics"`
	ReleaseYear  int    `json:"releaseYear"`
	Pinyin       string `json:"pinyin,omitempty"`
	ArtistPinyin string `json:"artistPinyin,omitempty"`
}

// Length returns the song duration.
func (s Song) Length() time.Duration {
	return time.Duration(s.Duration) * time.Millisecond
}

type Album struct {
	ID          string   `json:"albumId"`
	Name        string   `json:"albumName"`
	ArtistID    string   `json:"artistId"`
	Artist      string   `json:"artist"`
	CoverURL    string   `json:"coverUrl"`
	ReleaseYear int      `json:"releaseYear"`
	SongIDs     []string `json:"songIds"`
}

type Artist struct {
	ID          string `json:"artistId"`
	Name        string `json:"artistName"`
	AvatarURL   string `json:"avatarUrl"`
	Description string `json:"description"`
	Pinyin      string `json:"pinyin,omitempty"`
}

type MusicVideo struct {
	ID        string `json:"mvId"`
	Title     string `json:"title"`
	SongID    string `json:"songId"`
	ArtistID  string `json:"artistId"`
	Artist    string `json:"artist"`
	Duration  int64  `json:"duration"`
	CoverURL  string `json:"coverUrl"`
	PlayCount int64  `json:"playCount"`
}

// Catalog holds the parsed datasets plus the raw seed documents.
type Catalog struct {
	songs       []Song
	albums      []Album
	artists     []Artist
	musicVideos []MusicVideo

	songIndex   map[string]int
	albumIndex  map[string]int
	artistIndex map[string]int

	seeds fs.FS
}

// Load parses the catalog embedded in the binary.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(bundled, dataDir)
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS parses a catalog from fsys, which holds <name>.json documents.
// Missing documents yield empty datasets; unparseable ones are an error.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{seeds: fsys}

	if err := decodeSeed(fsys, SeedSongs, &c.songs); err != nil {
		return nil, err
	}
	if err := decodeSeed(fsys, SeedAlbums, &c.albums); err != nil {
		return nil, err
	}
	if err := decodeSeed(fsys, SeedArtists, &c.artists); err != nil {
		return nil, err
	}
	if err := decodeSeed(fsys, SeedMusicVideos, &c.musicVideos); err != nil {
		return nil, err
	}

	c.buildIndexes()
	return c, nil
}

// Empty returns a catalog with no data and no seeds.
func Empty() *Catalog {
	c := &Catalog{}
	c.buildIndexes()
	return c
}

func decodeSeed(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name+".json")
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s seed: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s seed: %w", name, err)
	}
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func (c *Catalog) buildIndexes() {
	c.songIndex = make(map[string]int, len(c.songs))
	for i, s := range c.songs {
		c.songIndex[s.ID] = i
	}
	c.albumIndex = make(map[string]int, len(c.albums))
	for i, a := range c.albums {
		c.albumIndex[a.ID] = i
	}
	c.artistIndex = make(map[string]int, len(c.artists))
	for i, a := range c.artists {
		c.artistIndex[a.ID] = i
	}
}

// Seed returns the raw bundled document for name, if one is shipped.
func (c *Catalog) Seed(name string) ([]byte, bool) {
	if c.seeds == nil {
		return nil, false
	}
	data, err := fs.ReadFile(c.seeds, path.Clean(name)+".json")
	if err != nil {
		return nil, false
	}
	return data, true
}

// Songs returns a copy of all songs in catalog order.
func (c *Catalog) Songs() []Song {
	out := make([]Song, len(c.songs))
	copy(out, c.songs)
	return out
}

// SongIDs returns every song id in catalog order.
func (c *Catalog) SongIDs() []string {
	ids := make([]string, len(c.songs))
	for i, s := range c.songs {
		ids[i] = s.ID
	}
	return ids
}

func (c *Catalog) Song(id string) (Song, bool) {
	i, ok := c.songIndex[id]
	if !ok {
		return Song{}, false
	}
	return c.songs[i], true
}

// SongDuration returns the length of a song, or zero when unknown.
func (c *Catalog) SongDuration(id string) time.Duration {
	s, ok := c.Song(id)
	if !ok {
		return 0
	}
	return s.Length()
}

func (c *Catalog) Albums() []Album {
	out := make([]Album, len(c.albums))
	copy(out, c.albums)
	return out
}

func (c *Catalog) Album(id string) (Album, bool) {
	i, ok := c.albumIndex[id]
	if !ok {
		return Album{}, false
	}
	return c.albums[i], true
}

func (c *Catalog) Artists() []Artist {
	out := make([]Artist, len(c.artists))
	copy(out, c.artists)
	return out
}

func (c *Catalog) Artist(id string) (Artist, bool) {
	i, ok := c.artistIndex[id]
	if !ok {
		return Artist{}, false
	}
	return c.artists[i], true
}

// ArtistSongs returns the songs credited to an artist, in catalog order.
func (c *Catalog) ArtistSongs(artistID string) []Song {
	var out []Song
	for _, s := range c.songs {
		if s.ArtistID == artistID {
			out = append(out, s)
		}
	}
	return out
}

func (c *Catalog) MusicVideos() []MusicVideo {
	out := make([]MusicVideo, len(c.musicVideos))
	copy(out, c.musicVideos)
	return out
}
