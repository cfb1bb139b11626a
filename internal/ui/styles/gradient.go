package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

const (
	barFilled = "━"
	barEmpty  = "─"
)

// neutral stands in for colors without an RGB value, such as ANSI indexes.
var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Gradient renders text in bold, shading each grapheme cluster from one
// color to the other.
func Gradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	for gr := uniseg.NewGraphemes(text); gr.Next(); {
		clusters = append(clusters, gr.Str())
	}

	bold := lipgloss.NewStyle().Bold(true)
	var b strings.Builder
	for i, c := range blend(len(clusters), from, to) {
		b.WriteString(bold.Foreground(c).Render(clusters[i]))
	}
	return b.String()
}

// Bar draws a width-cell progress bar filled to ratio. The filled cells take
// their color from the position they occupy on a full-width BarFrom to BarTo
// ramp, so the hue at a given cell never shifts as the bar grows.
func (t *Theme) Bar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(float64(width) * min(max(ratio, 0), 1))

	var b strings.Builder
	for _, c := range blend(width, t.BarFrom, t.BarTo)[:filled] {
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render(barFilled))
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(t.FgSubtle).
		Render(strings.Repeat(barEmpty, width-filled)))
	return b.String()
}

// blend returns n hex colors stepping from one end to the other in HCL space.
func blend(n int, from, to lipgloss.Color) []lipgloss.Color {
	if n <= 0 {
		return nil
	}
	a, z := rgb(from), rgb(to)
	out := make([]lipgloss.Color, n)
	for i := range out {
		var pos float64
		if n > 1 {
			pos = float64(i) / float64(n-1)
		}
		out[i] = lipgloss.Color(a.BlendHcl(z, pos).Clamped().Hex())
	}
	return out
}

func rgb(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return neutral
	}
	return col
}
