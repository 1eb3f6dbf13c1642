// Package render turns mind-map documents into images.
//
// # Overview
//
// Rendering is split into small packages that compose leaf-first:
//
//   - [canvas]: the drawing surface interface and its raster, SVG and
//     display-list implementations
//   - [text]: character-granular label wrapping
//   - [radial]: the radial tree layout and painter (the default view)
//   - [nodelink]: an alternative top-down tree diagram laid out by Graphviz
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). PDF output of both views
// goes through [ToPDF]; node-link PNGs go through [ToPNG]. Radial PNGs are
// drawn natively by the raster surface and need no external tool.
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [canvas]: github.com/matzehuels/mindmap/pkg/render/canvas
// [text]: github.com/matzehuels/mindmap/pkg/render/text
// [radial]: github.com/matzehuels/mindmap/pkg/render/radial
// [nodelink]: github.com/matzehuels/mindmap/pkg/render/nodelink
package render
