package canvas

import (
	"golang.org/x/image/font"

	"github.com/matzehuels/mindmap/pkg/fonts"
)

// Font selects a face by pixel size and weight.
type Font struct {
	Size float64 `json:"size"`
	Bold bool    `json:"bold,omitempty"`
}

// Surface is a 2-D drawing target in logical pixels. Colors are hex strings
// (#rgb or #rrggbb). Implementations are not safe for concurrent use.
type Surface interface {
	// Reset discards everything drawn and sizes the surface to w×h.
	Reset(w, h float64)
	FillRect(x, y, w, h float64, color string)
	// Circle fills a circle and, when strokeWidth > 0, outlines it.
	Circle(cx, cy, r float64, fill, stroke string, strokeWidth float64)
	Line(x1, y1, x2, y2 float64, color string, width float64)
	// Text paints s centered horizontally and vertically on (x, y).
	Text(s string, x, y float64, color string, f Font)
	// MeasureText returns the advance width of s in logical pixels, 0 for "".
	MeasureText(s string, f Font) float64
}

// Faces caches one font face per [Font]. A Faces belongs to a single surface
// and must not be shared between goroutines.
type Faces struct {
	faces map[Font]font.Face
}

// NewFaces returns an empty face cache.
func NewFaces() *Faces {
	return &Faces{faces: make(map[Font]font.Face)}
}

// Face returns the face for f, creating it on first use. It returns nil if
// the font data cannot be loaded.
func (c *Faces) Face(f Font) font.Face {
	if face, ok := c.faces[f]; ok {
		return face
	}
	face, err := fonts.NewFace(f.Size, f.Bold)
	if err != nil {
		return nil
	}
	c.faces[f] = face
	return face
}

// Measure returns the advance width of s under f. Unmeasurable text is 0.
func (c *Faces) Measure(s string, f Font) float64 {
	if s == "" || f.Size <= 0 {
		return 0
	}
	face := c.Face(f)
	if face == nil {
		return 0
	}
	return float64(font.MeasureString(face, s)) / 64
}
