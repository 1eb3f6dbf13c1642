// Package raster implements [canvas.Surface] on an in-memory RGBA image
// using fogleman/gg.
package raster

import (
	"errors"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/mindmap/pkg/render/canvas"
)

// ErrEmpty is returned when encoding a surface that was never reset.
var ErrEmpty = errors.New("raster: surface has no image")

// Option configures a [Surface].
type Option func(*Surface)

// WithScale sets the device pixel ratio. Logical coordinates and font sizes
// are multiplied by s; measurements stay in logical pixels. Values <= 0 are
// ignored.
func WithScale(s float64) Option {
	return func(r *Surface) {
		if s > 0 {
			r.scale = s
		}
	}
}

// Surface draws onto an image. The image is allocated by Reset.
type Surface struct {
	dc    *gg.Context
	scale float64
	faces *canvas.Faces // logical sizes, for measuring
	paint *canvas.Faces // device sizes, for drawing
}

var _ canvas.Surface = (*Surface)(nil)

// New returns a surface with no image. Call Reset before drawing.
func New(opts ...Option) *Surface {
	s := &Surface{scale: 1, faces: canvas.NewFaces(), paint: canvas.NewFaces()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scale returns the device pixel ratio.
func (s *Surface) Scale() float64 { return s.scale }

func (s *Surface) Reset(w, h float64) {
	pw := max(1, int(math.Ceil(w*s.scale)))
	ph := max(1, int(math.Ceil(h*s.scale)))
	s.dc = gg.NewContext(pw, ph)
}

func (s *Surface) FillRect(x, y, w, h float64, c string) {
	if s.dc == nil {
		return
	}
	k := s.scale
	s.dc.SetColor(parseColor(c))
	s.dc.DrawRectangle(x*k, y*k, w*k, h*k)
	s.dc.Fill()
}

func (s *Surface) Circle(cx, cy, r float64, fill, stroke string, strokeWidth float64) {
	if s.dc == nil {
		return
	}
	k := s.scale
	s.dc.DrawCircle(cx*k, cy*k, r*k)
	s.dc.SetColor(parseColor(fill))
	if strokeWidth <= 0 || stroke == "" {
		s.dc.Fill()
		return
	}
	s.dc.FillPreserve()
	s.dc.SetColor(parseColor(stroke))
	s.dc.SetLineWidth(strokeWidth * k)
	s.dc.Stroke()
}

func (s *Surface) Line(x1, y1, x2, y2 float64, c string, width float64) {
	if s.dc == nil {
		return
	}
	k := s.scale
	s.dc.SetColor(parseColor(c))
	s.dc.SetLineWidth(width * k)
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.DrawLine(x1*k, y1*k, x2*k, y2*k)
	s.dc.Stroke()
}

func (s *Surface) Text(str string, x, y float64, c string, f canvas.Font) {
	if s.dc == nil || str == "" {
		return
	}
	face := s.paint.Face(canvas.Font{Size: f.Size * s.scale, Bold: f.Bold})
	if face == nil {
		return
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(parseColor(c))
	s.dc.DrawStringAnchored(str, x*s.scale, y*s.scale, 0.5, 0.5)
}

func (s *Surface) MeasureText(str string, f canvas.Font) float64 {
	return s.faces.Measure(str, f)
}

// Image returns the drawn image, or nil before the first Reset.
func (s *Surface) Image() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

// EncodePNG writes the image as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if s.dc == nil {
		return ErrEmpty
	}
	return s.dc.EncodePNG(w)
}

// parseColor converts a hex string; anything unparseable paints black.
func parseColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.Black
	}
	return c
}
