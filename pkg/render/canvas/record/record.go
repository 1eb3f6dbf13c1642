// Package record implements [canvas.Surface] as a display list.
//
// A Recorder keeps every drawing call as an [Op]. The list is the JSON export
// format and is what tests inspect to check geometry without decoding pixels.
package record

import (
	"encoding/json"

	"github.com/matzehuels/mindmap/pkg/render/canvas"
)

// Operation kinds.
const (
	KindRect   = "rect"
	KindCircle = "circle"
	KindLine   = "line"
	KindText   = "text"
)

// Op is one drawing call. Only the fields relevant to Kind are set.
type Op struct {
	Kind        string       `json:"op"`
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	X2          float64      `json:"x2,omitempty"`
	Y2          float64      `json:"y2,omitempty"`
	W           float64      `json:"w,omitempty"`
	H           float64      `json:"h,omitempty"`
	R           float64      `json:"r,omitempty"`
	Fill        string       `json:"fill,omitempty"`
	Stroke      string       `json:"stroke,omitempty"`
	StrokeWidth float64      `json:"strokeWidth,omitempty"`
	Text        string       `json:"text,omitempty"`
	Font        *canvas.Font `json:"font,omitempty"`
}

// MeasureFunc measures text for a font.
type MeasureFunc func(s string, f canvas.Font) float64

// Option configures a [Recorder].
type Option func(*Recorder)

// WithMeasure replaces font-based measurement, typically with a fixed
// per-rune width in tests.
func WithMeasure(fn MeasureFunc) Option { return func(r *Recorder) { r.measure = fn } }

// Recorder records drawing calls.
type Recorder struct {
	Width, Height float64
	Ops           []Op

	measure MeasureFunc
}

var _ canvas.Surface = (*Recorder)(nil)

// New returns an empty recorder measuring with the Go fonts.
func New(opts ...Option) *Recorder {
	r := &Recorder{}
	for _, opt := range opts {
		opt(r)
	}
	if r.measure == nil {
		r.measure = canvas.NewFaces().Measure
	}
	return r
}

func (r *Recorder) Reset(w, h float64) {
	r.Width, r.Height = w, h
	r.Ops = r.Ops[:0]
}

func (r *Recorder) FillRect(x, y, w, h float64, color string) {
	r.Ops = append(r.Ops, Op{Kind: KindRect, X: x, Y: y, W: w, H: h, Fill: color})
}

func (r *Recorder) Circle(cx, cy, radius float64, fill, stroke string, strokeWidth float64) {
	r.Ops = append(r.Ops, Op{Kind: KindCircle, X: cx, Y: cy, R: radius, Fill: fill, Stroke: stroke, StrokeWidth: strokeWidth})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, color string, width float64) {
	r.Ops = append(r.Ops, Op{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2, Stroke: color, StrokeWidth: width})
}

func (r *Recorder) Text(s string, x, y float64, color string, f canvas.Font) {
	r.Ops = append(r.Ops, Op{Kind: KindText, X: x, Y: y, Text: s, Fill: color, Font: &f})
}

func (r *Recorder) MeasureText(s string, f canvas.Font) float64 {
	if s == "" {
		return 0
	}
	return r.measure(s, f)
}

// Filter returns the ops of the given kind in drawing order.
func (r *Recorder) Filter(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Count returns the number of ops of the given kind.
func (r *Recorder) Count(kind string) int { return len(r.Filter(kind)) }

type jsonOutput struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ops    []Op    `json:"ops"`
}

// MarshalJSON encodes the canvas size and the display list.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	ops := r.Ops
	if ops == nil {
		ops = []Op{}
	}
	return json.Marshal(jsonOutput{Width: r.Width, Height: r.Height, Ops: ops})
}
