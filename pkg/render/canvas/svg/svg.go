// Package svg implements [canvas.Surface] as a standalone SVG document.
//
// Text is measured with the same Go fonts the raster surface uses. With
// [WithEmbeddedFonts] the fonts are inlined as @font-face rules so viewers
// lay labels out exactly as measured; without it viewers fall back to a
// generic sans-serif stack.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/render/canvas"
)

// Option configures a [Surface].
type Option func(*Surface)

// WithEmbeddedFonts inlines the Go fonts as base64 @font-face rules.
func WithEmbeddedFonts() Option { return func(s *Surface) { s.embedFonts = true } }

// Surface accumulates SVG elements. Call Bytes to get the document.
type Surface struct {
	body       bytes.Buffer
	w, h       float64
	embedFonts bool
	faces      *canvas.Faces
}

var _ canvas.Surface = (*Surface)(nil)

// New returns an empty 0×0 surface.
func New(opts ...Option) *Surface {
	s := &Surface{faces: canvas.NewFaces()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Surface) Reset(w, h float64) {
	s.body.Reset()
	s.w, s.h = w, h
}

func (s *Surface) FillRect(x, y, w, h float64, color string) {
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(x), num(y), num(w), num(h), escapeXML(color))
}

func (s *Surface) Circle(cx, cy, r float64, fill, stroke string, strokeWidth float64) {
	fmt.Fprintf(&s.body, `  <circle cx="%s" cy="%s" r="%s" fill="%s"`, num(cx), num(cy), num(r), escapeXML(fill))
	if strokeWidth > 0 && stroke != "" {
		fmt.Fprintf(&s.body, ` stroke="%s" stroke-width="%s"`, escapeXML(stroke), num(strokeWidth))
	}
	s.body.WriteString("/>\n")
}

func (s *Surface) Line(x1, y1, x2, y2 float64, color string, width float64) {
	fmt.Fprintf(&s.body, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`+"\n",
		num(x1), num(y1), num(x2), num(y2), escapeXML(color), num(width))
}

func (s *Surface) Text(str string, x, y float64, color string, f canvas.Font) {
	if str == "" {
		return
	}
	weight := "normal"
	if f.Bold {
		weight = "bold"
	}
	fmt.Fprintf(&s.body, `  <text x="%s" y="%s" fill="%s" font-size="%s" font-weight="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		num(x), num(y), escapeXML(color), num(f.Size), weight, escapeXML(str))
}

func (s *Surface) MeasureText(str string, f canvas.Font) float64 {
	return s.faces.Measure(str, f)
}

// Bytes returns the complete SVG document drawn since the last Reset.
func (s *Surface) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(s.w), num(s.h), num(s.w), num(s.h))
	s.writeStyle(&buf)
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (s *Surface) writeStyle(buf *bytes.Buffer) {
	buf.WriteString("  <style>\n")
	if s.embedFonts {
		regular, bold := fonts.Base64()
		fmt.Fprintf(buf, "    @font-face { font-family: '%s'; font-weight: normal; src: url(data:font/ttf;base64,%s) format('truetype'); }\n", fonts.FontFamily, regular)
		fmt.Fprintf(buf, "    @font-face { font-family: '%s'; font-weight: bold; src: url(data:font/ttf;base64,%s) format('truetype'); }\n", fonts.FontFamily, bold)
	}
	fmt.Fprintf(buf, "    text { font-family: %s; }\n", fonts.FallbackFontFamily)
	buf.WriteString("  </style>\n")
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
