package mindmap

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/matzehuels/mindmap/pkg/errors"
)

// Layout names accepted in [Document.Layout]. Tree, vertical and
// horizontal are node-link layouts with a fixed direction.
const (
	LayoutRadial     = "radial"
	LayoutNodelink   = "nodelink"
	LayoutTree       = "tree"
	LayoutVertical   = "vertical"
	LayoutHorizontal = "horizontal"
	DefaultLayout    = LayoutRadial
)

// Layouts returns the accepted layout names, default first.
func Layouts() []string {
	return []string{LayoutRadial, LayoutTree, LayoutHorizontal, LayoutVertical, LayoutNodelink}
}

// Node is one labeled entry of a mind map.
//
// Nodes carry no geometry: positions and radii are computed by a render pass
// and discarded when it ends.
type Node struct {
	// ID is an opaque identifier; it never influences layout.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
	// Label is the display text. Nodes with an empty label are not drawn,
	// and neither are their descendants.
	Label string `json:"text" yaml:"text"`
	// Children are placed around this node in slice order.
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// UnmarshalJSON accepts "label" as an alias for "text", which some upstream
// responses use.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	var aux struct {
		plain
		Alias string `json:"label"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*n = Node(aux.plain)
	if n.Label == "" {
		n.Label = aux.Alias
	}
	return nil
}

// Document is the input of a render pass: a title circle with the top-level
// nodes fanned out around it.
//
// A Document is built once per generation and treated as immutable; every
// redraw re-renders the same value.
type Document struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	// Content is the outline the document was generated from. It is kept for
	// regeneration and never rendered.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
	Nodes   []Node `json:"nodes" yaml:"nodes"`
	Theme   string `json:"theme,omitempty" yaml:"theme,omitempty"`
	Layout  string `json:"layout,omitempty" yaml:"layout,omitempty"`
	Style   *Style `json:"style,omitempty" yaml:"style,omitempty"`
}

// Validate checks the fields an API caller is expected to provide.
// Rendering itself never requires a valid document.
func (d *Document) Validate() error {
	if d == nil {
		return errors.New(errors.ErrCodeInvalidDocument, "document is empty")
	}
	if err := errors.ValidateTitle(d.Title); err != nil {
		return err
	}
	if d.Layout != "" && !slices.Contains(Layouts(), d.Layout) {
		return errors.New(errors.ErrCodeInvalidDocument, "unsupported layout: %q (must be one of: %s)", d.Layout, strings.Join(Layouts(), ", ")).WithField("layout")
	}
	if d.Style != nil {
		return d.Style.Validate()
	}
	return nil
}

// NodeCount returns the number of nodes in the tree, including nodes that a
// render pass would skip.
func (d *Document) NodeCount() int {
	count := 0
	Walk(d.Nodes, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// DrawableCount returns the number of nodes a render pass paints: labeled
// nodes whose ancestors are all labeled.
func (d *Document) DrawableCount() int {
	count := 0
	Walk(d.Nodes, func(n *Node, _ int) bool {
		if n.Label == "" {
			return false
		}
		count++
		return true
	})
	return count
}

// Depth returns the number of levels below the title circle (0 for a
// document without nodes).
func (d *Document) Depth() int {
	depth := 0
	Walk(d.Nodes, func(_ *Node, level int) bool {
		depth = max(depth, level)
		return true
	})
	return depth
}

// Walk visits nodes in pre-order. Depth starts at 1 for the given slice.
// Returning false from fn skips the node's children.
func Walk(nodes []Node, fn func(n *Node, depth int) bool) {
	walk(nodes, 1, fn)
}

func walk(nodes []Node, depth int, fn func(*Node, int) bool) {
	for i := range nodes {
		if fn(&nodes[i], depth) {
			walk(nodes[i].Children, depth+1, fn)
		}
	}
}
