package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Search returns the songs whose name, artist, or phonetic keys contain
// keyword, ignoring case. A blank keyword matches nothing.
func (c *Catalog) Search(keyword string) []Song {
	// Casers carry state and must not be shared between goroutines.
	fold := cases.Fold()

	needle := fold.String(strings.TrimSpace(keyword))
	if needle == "" {
		return nil
	}

	var out []Song
	for _, s := range c.songs {
		if matches(fold, s, needle) {
			out = append(out, s)
		}
	}
	return out
}

func matches(fold cases.Caser, s Song, needle string) bool {
	fields := [...]string{s.Name, s.Artist, s.Pinyin, s.ArtistPinyin}
	for _, f := range fields {
		if f != "" && strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}
