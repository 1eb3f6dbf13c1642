// Package outline builds mind-map documents from indented plain-text
// outlines.
//
// Each non-blank line becomes a node. Leading list markers ("-", "*", "•",
// "+", "1.", "1)") are removed. Indentation sets the nesting: one tab or two
// spaces per level, and a line indented deeper than the previous one becomes
// a child of the nearest line above it with a smaller indent.
//
//	Goals
//	  - Grow revenue
//	    - New markets
//	  - Cut costs
//	Risks
package outline

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

var markerRe = regexp.MustCompile(`^(?:[-*•+]|\d+[.)])\s*`)

// Request holds the fields a document is generated from.
type Request struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	Theme       string         `json:"theme,omitempty"`
	Layout      string         `json:"layout,omitempty"`
	Style       *mindmap.Style `json:"style,omitempty"`
}

// Generate parses req.Content and returns a new document. Title and content
// are required; theme and layout default to "default" and "radial".
func Generate(req Request) (*mindmap.Document, error) {
	if err := errors.ValidateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := errors.ValidateContent(req.Content); err != nil {
		return nil, err
	}

	doc := &mindmap.Document{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Content:     req.Content,
		Nodes:       Parse(req.Content),
		Theme:       req.Theme,
		Layout:      req.Layout,
		Style:       req.Style,
	}
	if doc.Theme == "" {
		doc.Theme = mindmap.DefaultTheme
	}
	if doc.Layout == "" {
		doc.Layout = mindmap.DefaultLayout
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// item is a node under construction; children are pointers so the tree can
// grow while deeper lines are still attached to it.
type item struct {
	level    int
	node     mindmap.Node
	children []*item
}

// Parse converts outline text into a forest of nodes with fresh UUIDs.
func Parse(content string) []mindmap.Node {
	root := &item{level: -1}
	stack := []*item{root}

	for _, raw := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		label := strings.TrimSpace(raw)
		if label == "" {
			continue
		}
		label = strings.TrimSpace(markerRe.ReplaceAllString(label, ""))
		if label == "" {
			continue
		}

		level := indentLevel(raw)
		for len(stack) > 1 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		it := &item{level: level, node: mindmap.Node{ID: uuid.NewString(), Label: label}}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, it)
		stack = append(stack, it)
	}
	return build(root.children)
}

func build(items []*item) []mindmap.Node {
	if len(items) == 0 {
		return nil
	}
	nodes := make([]mindmap.Node, len(items))
	for i, it := range items {
		nodes[i] = it.node
		nodes[i].Children = build(it.children)
	}
	return nodes
}

// indentLevel counts leading tabs as one level each and pairs of spaces as
// one level.
func indentLevel(line string) int {
	tabs, spaces := 0, 0
	for _, r := range line {
		switch r {
		case '\t':
			tabs++
		case ' ':
			spaces++
		default:
			return tabs + spaces/2
		}
	}
	return tabs + spaces/2
}
