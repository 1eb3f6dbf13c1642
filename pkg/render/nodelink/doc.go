// Package nodelink renders mind maps as top-down tree diagrams.
//
// # Overview
//
// This package produces a node-link view using Graphviz: the title at the
// top and every node below its parent, connected by straight edges. It is an
// alternative to the radial view for large trees, where Graphviz's
// hierarchical layout avoids the overlaps a radial fan can produce.
//
// # Usage
//
// Convert a document to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Styling
//
// Colors come from the document's effective style, so a themed document
// looks the same in both views.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF conversion requires librsvg (rsvg-convert); PNG uses it
// when installed and Graphviz's own PNG output otherwise.
package nodelink
