package outline

import (
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// shape renders a forest as "label(child,child)" for compact comparison.
func shape(nodes []mindmap.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.Label
		if len(n.Children) > 0 {
			parts[i] += "(" + shape(n.Children) + ")"
		}
	}
	return strings.Join(parts, ",")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", ""},
		{"blank lines", "\n  \n\t\n", ""},
		{"flat", "a\nb\nc", "a,b,c"},
		{"markers", "- a\n* b\n• c\n+ d\n1. e\n2) f", "a,b,c,d,e,f"},
		{"marker only", "-\n*\na", "a"},
		{"spaces", "a\n  b\n    c\n  d\ne", "a(b(c),d),e"},
		{"tabs", "a\n\tb\n\t\tc\n\td", "a(b(c),d)"},
		{"jump in depth", "a\n      b\n  c", "a(b,c)"},
		{"leading indent", "  a\n  b", "a,b"},
		{"crlf", "a\r\n  b\r\n", "a(b)"},
		{"hyphen inside text", "well-known", "well-known"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shape(Parse(tt.content)); got != tt.want {
				t.Errorf("Parse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseIDs(t *testing.T) {
	nodes := Parse("a\n  b\nc")
	seen := map[string]bool{}
	mindmap.Walk(nodes, func(n *mindmap.Node, _ int) bool {
		if n.ID == "" {
			t.Errorf("node %q has no ID", n.Label)
		}
		if seen[n.ID] {
			t.Errorf("duplicate ID %q", n.ID)
		}
		seen[n.ID] = true
		return true
	})
	if len(seen) != 3 {
		t.Errorf("IDs = %d, want 3", len(seen))
	}
}

func TestIndentLevel(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"a", 0},
		{" a", 0},
		{"  a", 1},
		{"   a", 1},
		{"\ta", 1},
		{"\t  a", 2},
		{"    ", 2},
	}
	for _, tt := range tests {
		if got := indentLevel(tt.line); got != tt.want {
			t.Errorf("indentLevel(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestGenerate(t *testing.T) {
	doc, err := Generate(Request{
		Title:       " Roadmap ",
		Description: "2025",
		Content:     "Build\n  API\nShip",
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if doc.Title != "Roadmap" {
		t.Errorf("Title = %q, want trimmed", doc.Title)
	}
	if doc.Theme != mindmap.DefaultTheme || doc.Layout != mindmap.DefaultLayout {
		t.Errorf("Theme/Layout = %q/%q, want defaults", doc.Theme, doc.Layout)
	}
	if got := shape(doc.Nodes); got != "Build(API),Ship" {
		t.Errorf("Nodes = %q", got)
	}
	if doc.Content != "Build\n  API\nShip" {
		t.Error("Content should be kept verbatim")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		code errors.Code
	}{
		{"missing title", Request{Content: "a"}, errors.ErrCodeInvalidInput},
		{"missing content", Request{Title: "t", Content: "  "}, errors.ErrCodeInvalidInput},
		{"bad layout", Request{Title: "t", Content: "a", Layout: "spiral"}, errors.ErrCodeInvalidDocument},
		{"bad color", Request{Title: "t", Content: "a", Style: &mindmap.Style{NodeColor: "red"}}, errors.ErrCodeInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.req)
			if !errors.Is(err, tt.code) {
				t.Errorf("Generate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}
