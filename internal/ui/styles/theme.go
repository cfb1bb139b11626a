// Package styles holds the palettes used by the now-playing view.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunedeck/internal/catalog"
)

// Theme defines the palette for one family of player styles.
type Theme struct {
	Primary   lipgloss.Color // title, active states
	Secondary lipgloss.Color // mode and style labels

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	Border lipgloss.Color

	// Progress bar gradient
	BarFrom lipgloss.Color
	BarTo   lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for the theme.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Frame   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// Retro styles: warm amber on dark, like an LCD panel.
var retroTheme = Theme{
	Primary:   lipgloss.Color("#f1a208"),
	Secondary: lipgloss.Color("#e07a5f"),

	FgBase:   lipgloss.Color("#e0d6c2"),
	FgMuted:  lipgloss.Color("#9c9178"),
	FgSubtle: lipgloss.Color("#5e574a"),

	Border: lipgloss.Color("#9c9178"),

	BarFrom: lipgloss.Color("#f1a208"),
	BarTo:   lipgloss.Color("#e07a5f"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
}

// Classic styles: the purple accent on grayscale.
var classicTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#7dd3fc"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Border: lipgloss.Color("#585858"),

	BarFrom: lipgloss.Color("#a78bfa"),
	BarTo:   lipgloss.Color("#7dd3fc"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
}

// T returns the theme of the default player style.
func T() *Theme {
	return &retroTheme
}

// For returns the theme matching a player style category. Unknown
// categories get the default theme.
func For(category string) *Theme {
	if category == catalog.StyleClassic {
		return &classicTheme
	}
	return &retroTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Label: lipgloss.NewStyle().Foreground(t.Secondary),
		Frame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
	}
}
