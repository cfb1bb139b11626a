package nowplaying

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/ui/render"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	heart       = "♥"
	separator   = " · "
	// border plus horizontal padding of the frame
	frameChrome = 6
	minBarWidth = 5
)

func (m Model) View() string {
	s := m.theme.S()
	inner := max(m.width-frameChrome, 10)
	np := m.session.NowPlaying()

	var lines []string
	if np.SongID == "" {
		lines = []string{s.Muted.Render("Nothing queued")}
	} else {
		song, ok := m.songs.Song(np.SongID)
		if !ok {
			song = catalog.Song{ID: np.SongID, Name: np.SongID}
		}
		lines = []string{
			m.titleLine(song, inner),
			ansi.Truncate(s.Muted.Render(infoLine(song)), inner, "…"),
			m.progressLine(np, inner),
			ansi.Truncate(m.metaLine(np), inner, "…"),
		}
	}

	var b strings.Builder
	b.WriteString(s.Frame.Width(max(m.width-2, 0)).Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	if m.status != "" {
		style := s.Success
		if m.statusErr {
			style = s.Error
		}
		b.WriteString(ansi.Truncate(style.Render(m.status), m.width, "…"))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) titleLine(song catalog.Song, width int) string {
	title := render.Truncate(song.Name, width)
	if title == "" {
		title = "Unknown Track"
	}
	return styles.Gradient(title, m.theme.Primary, m.theme.Secondary)
}

func infoLine(song catalog.Song) string {
	var parts []string
	if song.Artist != "" {
		parts = append(parts, render.Sanitize(song.Artist))
	}
	if song.Album != "" {
		parts = append(parts, render.Sanitize(song.Album))
	}
	if song.ReleaseYear > 0 {
		parts = append(parts, strconv.Itoa(song.ReleaseYear))
	}
	return strings.Join(parts, separator)
}

// progressLine renders "▶  1:23  ━━━───  4:29".
func (m Model) progressLine(np playback.NowPlaying, width int) string {
	s := m.theme.S()

	status := pauseSymbol
	if np.Playing() {
		status = playSymbol
	}
	elapsed := render.Duration(np.Elapsed)
	total := render.Duration(np.Duration)

	fixed := lipgloss.Width(status) + 2 + lipgloss.Width(elapsed) + 2 + 2 + lipgloss.Width(total)
	barWidth := width - fixed
	if barWidth < minBarWidth {
		return s.Base.Render(status + "  " + elapsed + " / " + total)
	}

	return s.Title.Render(status) + "  " +
		s.Base.Render(elapsed) + "  " +
		m.theme.Bar(np.Progress, barWidth) + "  " +
		s.Muted.Render(total)
}

func (m Model) metaLine(np playback.NowPlaying) string {
	s := m.theme.S()

	parts := []string{
		s.Muted.Render(fmt.Sprintf("%d/%d", np.Index+1, np.QueueLen)),
		s.Label.Render(np.Mode.String()),
	}
	if m.style.Name != "" {
		parts = append(parts, s.Subtle.Render(m.style.Name))
	}
	line := strings.Join(parts, s.Subtle.Render(separator))
	if m.favorite {
		line += "  " + s.Error.Render(heart)
	}
	return line
}
