// Package render provides text helpers shared by the CLI tables and the
// now-playing view. Widths are terminal cells, so CJK titles line up.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters (tab excepted) and invalid UTF-8 and
// turns non-breaking spaces into plain ones. Overlay files are user
// writable, so names read back from them go through here before display.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == utf8.RuneError, r != '\t' && unicode.IsControl(r):
			return -1
		case r == '\u00a0':
			return ' '
		default:
			return r
		}
	}, s)
}

// Truncate sanitizes s and cuts it to maxWidth cells, ending in "..." when
// anything was removed.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// Fit truncates s and right-pads it to exactly width cells.
func Fit(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// Separator is a horizontal rule width cells long.
func Separator(width int) string {
	return strings.Repeat("─", width)
}

// Duration formats d as m:ss, or h:mm:ss from one hour up.
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h, m, sec := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// Table lays rows out in columns sized to their widest cell, each cell
// truncated to maxCol. Rows are joined with newlines; the header, when
// given, is followed by a separator.
func Table(header []string, rows [][]string, maxCol int) string {
	cols := len(header)
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	widths := make([]int, cols)
	measure := func(r []string) {
		for i, c := range r {
			widths[i] = max(widths[i], min(runewidth.StringWidth(Sanitize(c)), maxCol))
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r)
	}

	var b strings.Builder
	line := func(r []string) {
		cells := make([]string, cols)
		for i := range cols {
			var c string
			if i < len(r) {
				c = r[i]
			}
			if i == cols-1 {
				cells[i] = Truncate(c, widths[i])
			} else {
				cells[i] = Fit(c, widths[i])
			}
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteByte('\n')
	}

	if len(header) > 0 {
		line(header)
		total := 0
		for _, w := range widths {
			total += w
		}
		b.WriteString(Separator(total + 2*(cols-1)))
		b.WriteByte('\n')
	}
	for _, r := range rows {
		line(r)
	}
	return b.String()
}
