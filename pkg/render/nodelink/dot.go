package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node ID and depth to each label.
	// When false, only the label text is shown.
	Detailed bool
	// RankDir is the Graphviz rank direction: "TB" (default), "LR", "BT" or "RL".
	RankDir string
	// Themes resolves the document's theme. Nil means the built-in themes.
	Themes *mindmap.ThemeSet
}

// ToDOT converts a document to Graphviz DOT format for node-link visualization.
// The title becomes the root; nodes are connected to their parents in the
// direction given by [Options.RankDir].
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Unlabeled nodes and their subtrees are left out, as in the radial view.
// DOT identifiers are derived from tree paths, so duplicate or missing node
// IDs are harmless.
func ToDOT(doc *mindmap.Document, opts Options) string {
	style := mindmap.Resolve(doc, opts.Themes)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", style.BackgroundColor)
	fmt.Fprintf(&buf, "  node [shape=ellipse, style=filled, fillcolor=%q, color=\"#ffffff\", fontcolor=\"#ffffff\", fontsize=14, margin=\"0.2,0.1\"];\n", style.NodeColor)
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=2, arrowhead=none];\n", style.LineColor)
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	title := ""
	var nodes []mindmap.Node
	if doc != nil {
		title, nodes = doc.Title, doc.Nodes
	}
	fmt.Fprintf(&buf, "  %q [label=%q, fontsize=18, penwidth=3];\n", "root", title)

	var edges []string
	writeNodes(&buf, &edges, nodes, "root", "n", 1, opts.Detailed)

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func writeNodes(buf *bytes.Buffer, edges *[]string, nodes []mindmap.Node, parent, prefix string, depth int, detailed bool) {
	for i, n := range nodes {
		if n.Label == "" {
			continue
		}
		id := prefix + strconv.Itoa(i)
		fmt.Fprintf(buf, "  %q [label=%q];\n", id, fmtLabel(n, depth, detailed))
		*edges = append(*edges, fmt.Sprintf("  %q -> %q;\n", parent, id))
		writeNodes(buf, edges, n.Children, id, id+"_", depth+1, detailed)
	}
}

func fmtLabel(n mindmap.Node, depth int, detailed bool) string {
	if !detailed {
		return n.Label
	}
	parts := []string{fmt.Sprintf("depth: %d", depth)}
	if n.ID != "" {
		parts = append(parts, "id: "+n.ID)
	}
	if len(n.Children) > 0 {
		parts = append(parts, fmt.Sprintf("children: %d", len(n.Children)))
	}
	return n.Label + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := renderNative(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// pixel-sized one starting at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG. With rsvg-convert installed the
// Graphviz SVG is rasterized at the given scale; otherwise Graphviz draws the
// PNG itself at its native resolution.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	if !render.Available() {
		return renderNative(ctx, dot, graphviz.PNG)
	}
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

func renderNative(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
