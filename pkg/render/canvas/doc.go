// Package canvas defines the drawing surface the mind-map renderers paint on.
//
// # Overview
//
// A [Surface] is the small set of primitives the radial renderer needs:
// background fill, circles, straight lines and centered text, plus text
// measurement so label wrapping and node sizing can be computed against the
// same metrics the output uses. Three implementations live in subpackages:
//
//   - [raster]: an in-memory image drawn with fogleman/gg, encoded as PNG
//   - [svg]: a standalone SVG document
//   - [record]: a display list of drawing operations, serializable as JSON
//
// All three measure text with the Go fonts from [fonts], so a document wraps
// identically whichever format it is rendered to.
//
// [raster]: github.com/matzehuels/mindmap/pkg/render/canvas/raster
// [svg]: github.com/matzehuels/mindmap/pkg/render/canvas/svg
// [record]: github.com/matzehuels/mindmap/pkg/render/canvas/record
// [fonts]: github.com/matzehuels/mindmap/pkg/fonts
package canvas
