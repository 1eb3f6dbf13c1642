// Package radial lays out and paints a mind map as a radial tree.
//
// # Layout
//
// The title sits in a fixed root circle near the top of an 800×600 canvas.
// Each node's children fan out around it on a circle whose radius is shared
// by all siblings:
//
//	fan radius  = max(200, 20·n)      n = number of siblings
//	angle(i)    = 2π·i/n              absolute, not relative to the parent
//	node radius = clamp(labelWidth/2 + 20, 40, 80)
//
// Unlabeled nodes are skipped together with their subtrees. Their slot in the
// fan stays empty so the remaining siblings keep their angles.
//
// Labels are wrapped by [text.Draw] to 1.8× the node radius. There is no
// clipping: deep or crowded trees may draw beyond the canvas.
//
// # Usage
//
//	s := raster.New(raster.WithScale(2))
//	radial.New(radial.WithThemes(themes)).Render(s, doc)
//	err := s.EncodePNG(w)
//
// Every call repaints the whole surface; no state is kept between calls.
// [Renderer.Layout] returns the same geometry without drawing, and
// [WithPlacementHook] observes it during a normal render.
//
// [text.Draw]: github.com/matzehuels/mindmap/pkg/render/text.Draw
package radial
