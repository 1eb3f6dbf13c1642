// Package mindmap defines the document model rendered by the radial engine.
//
// # Model
//
// A [Document] is a title and description plus an ordered forest of [Node]
// values that fan out around the title circle. Nodes hold only a label, an
// opaque ID and their children; all geometry is computed by
// [github.com/matzehuels/mindmap/pkg/render/radial] during a render pass and
// never written back.
//
// # Styles and themes
//
// Colors come from three layers: the document's own [Style], a named
// [Theme], and fixed fallbacks. [Resolve] collapses them into an
// [EffectiveStyle] once per render pass:
//
//	style := mindmap.Resolve(doc, mindmap.DefaultThemes())
//	// style.NodeColor, style.LineColor, style.BackgroundColor are all valid
//
// Invalid colors are treated as missing rather than as errors, because
// documents often come from loosely formatted upstream responses. Use
// [Document.Validate] at API boundaries to reject them instead.
package mindmap
