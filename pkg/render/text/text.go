// Package text wraps labels to a pixel width and paints them centered on a
// point.
//
// Wrapping works on single characters rather than words, so labels without
// spaces (long identifiers, CJK text) still break to fit. The line is packed
// greedily: a character moves to a new line only when appending it would
// exceed the width and the current line already holds something. A single
// character wider than the limit therefore still gets its own line.
package text

import (
	"github.com/matzehuels/mindmap/pkg/render/canvas"
)

// LineHeight is the vertical distance between wrapped lines in pixels.
const LineHeight = 20.0

// Wrap splits s into lines no wider than maxWidth as measured by measure.
// It returns nil for empty text.
func Wrap(s string, maxWidth float64, measure func(string) float64) []string {
	if s == "" {
		return nil
	}
	var (
		lines []string
		line  []rune
	)
	for _, r := range s {
		next := append(line, r)
		if len(line) > 0 && measure(string(next)) > maxWidth {
			lines = append(lines, string(line))
			line = []rune{r}
			continue
		}
		line = next
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}

// Draw wraps s to maxWidth using the surface's metrics for f and paints the
// lines centered on (x, y), top to bottom. Nothing is drawn for empty text or
// a nil surface. There is no line limit; long labels overflow vertically.
func Draw(surface canvas.Surface, s string, x, y, maxWidth float64, color string, f canvas.Font) {
	if surface == nil || s == "" {
		return
	}
	lines := Wrap(s, maxWidth, func(line string) float64 {
		return surface.MeasureText(line, f)
	})
	top := y - float64(len(lines)-1)*LineHeight/2
	for i, line := range lines {
		surface.Text(line, x, top+float64(i)*LineHeight, color, f)
	}
}
