package radial

import (
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/render/canvas"
	"github.com/matzehuels/mindmap/pkg/render/canvas/record"
	"github.com/matzehuels/mindmap/pkg/render/text"
)

// Fonts and fixed colors.
var (
	TitleFont       = canvas.Font{Size: 24, Bold: true}
	DescriptionFont = canvas.Font{Size: 16}
	RootFont        = canvas.Font{Size: 16, Bold: true}
	NodeFont        = canvas.Font{Size: 14}
)

const (
	TitleColor       = "#333333"
	DescriptionColor = "#666666"
	LabelColor       = "#ffffff"
	StrokeColor      = "#ffffff"
)

// Placement is the computed geometry of one drawn node.
type Placement struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label"`
	// Depth is 1 for the nodes around the title circle.
	Depth int `json:"depth"`
	// Index and FanSize locate the node in its parent's fan. Skipped
	// siblings keep their slots.
	Index      int     `json:"index"`
	FanSize    int     `json:"fanSize"`
	Angle      float64 `json:"angle"`
	FanRadius  float64 `json:"fanRadius"`
	NodeRadius float64 `json:"nodeRadius"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	ParentX    float64 `json:"parentX"`
	ParentY    float64 `json:"parentY"`
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithThemes sets the themes used to resolve document styles.
func WithThemes(t *mindmap.ThemeSet) Option { return func(r *Renderer) { r.themes = t } }

// WithPlacementHook calls fn for every drawn node, in paint order.
func WithPlacementHook(fn func(Placement)) Option { return func(r *Renderer) { r.hook = fn } }

// Renderer paints documents as radial mind maps. A Renderer is immutable and
// may be shared; each concurrent Render call needs its own surface.
type Renderer struct {
	themes *mindmap.ThemeSet
	hook   func(Placement)
}

// New returns a renderer using the built-in themes.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.themes == nil {
		r.themes = mindmap.DefaultThemes()
	}
	return r
}

// Render repaints s from scratch with doc. It reports false, drawing nothing,
// when s or doc is nil. The document is only read.
func (r *Renderer) Render(s canvas.Surface, doc *mindmap.Document) bool {
	if s == nil || doc == nil {
		return false
	}
	p := pass{
		surface: s,
		style:   mindmap.Resolve(doc, r.themes),
		hook:    r.hook,
	}
	p.background()
	p.header(doc.Title, doc.Description)
	p.root(doc.Title)
	p.placeChildren(doc.Nodes, RootX, RootY, 1)
	return true
}

// Layout computes the placements of doc without keeping any drawing. Text
// is measured with the Go fonts.
func (r *Renderer) Layout(doc *mindmap.Document) []Placement {
	var out []Placement
	collect := *r
	collect.hook = func(p Placement) {
		out = append(out, p)
		if r.hook != nil {
			r.hook(p)
		}
	}
	collect.Render(record.New(), doc)
	return out
}

// Render paints doc onto s with the built-in themes.
func Render(s canvas.Surface, doc *mindmap.Document) bool {
	return New().Render(s, doc)
}

// pass is the state of one render call. Nothing in it outlives the call.
type pass struct {
	surface canvas.Surface
	style   mindmap.EffectiveStyle
	hook    func(Placement)
}

func (p *pass) background() {
	p.surface.Reset(Width, Height)
	p.surface.FillRect(0, 0, Width, Height, p.style.BackgroundColor)
}

func (p *pass) header(title, description string) {
	if title != "" {
		p.surface.Text(title, RootX, TitleY, TitleColor, TitleFont)
	}
	if description != "" {
		p.surface.Text(description, RootX, DescriptionY, DescriptionColor, DescriptionFont)
	}
}

func (p *pass) root(title string) {
	p.surface.Circle(RootX, RootY, RootRadius, p.style.NodeColor, StrokeColor, RootStrokeWidth)
	text.Draw(p.surface, title, RootX, RootY, RootLabelWidth, LabelColor, RootFont)
}

// placeChildren fans nodes out around (px, py) and recurses into each drawn
// node. Unlabeled nodes are skipped with their subtrees but keep their slot.
func (p *pass) placeChildren(nodes []mindmap.Node, px, py float64, depth int) {
	n := len(nodes)
	if n == 0 {
		return
	}
	fan := FanRadius(n)
	for i := range nodes {
		node := &nodes[i]
		if node.Label == "" {
			continue
		}
		x, y := Position(px, py, i, n)
		p.surface.Line(px, py, x, y, p.style.LineColor, EdgeWidth)

		radius := NodeRadius(p.surface.MeasureText(node.Label, NodeFont))
		p.surface.Circle(x, y, radius, p.style.NodeColor, StrokeColor, NodeStrokeWidth)
		text.Draw(p.surface, node.Label, x, y, LabelWidth(radius), LabelColor, NodeFont)

		if p.hook != nil {
			p.hook(Placement{
				ID:         node.ID,
				Label:      node.Label,
				Depth:      depth,
				Index:      i,
				FanSize:    n,
				Angle:      Angle(i, n),
				FanRadius:  fan,
				NodeRadius: radius,
				X:          x,
				Y:          y,
				ParentX:    px,
				ParentY:    py,
			})
		}
		p.placeChildren(node.Children, x, y, depth+1)
	}
}
