package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/render"
	"github.com/matzehuels/mindmap/pkg/render/canvas/raster"
	"github.com/matzehuels/mindmap/pkg/render/canvas/record"
	"github.com/matzehuels/mindmap/pkg/render/canvas/svg"
	"github.com/matzehuels/mindmap/pkg/render/nodelink"
	"github.com/matzehuels/mindmap/pkg/render/radial"
)

// Render generates output artifacts in the requested formats.
// Options are expected to be validated; themes may be nil for the built-in set.
func Render(ctx context.Context, doc *mindmap.Document, themes *mindmap.ThemeSet, opts Options) (map[string][]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("render: document is nil")
	}
	if opts.IsNodelink() {
		return renderNodelink(ctx, doc, themes, opts)
	}
	return renderRadial(ctx, doc, themes, opts)
}

// renderRadial generates radial mind map outputs.
func renderRadial(ctx context.Context, doc *mindmap.Document, themes *mindmap.ThemeSet, opts Options) (map[string][]byte, error) {
	renderer := radial.New(radial.WithThemes(themes))
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPNG:
			data, err = RenderPNG(renderer, doc, opts.Scale)
		case FormatSVG:
			data = RenderSVG(renderer, doc, opts.EmbedFonts)
		case FormatPDF:
			data, err = render.ToPDF(ctx, RenderSVG(renderer, doc, opts.EmbedFonts))
		case FormatJSON:
			data, err = RenderJSON(doc, themes)
		default:
			return nil, fmt.Errorf("unsupported radial format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink generates node-link outputs through Graphviz.
func renderNodelink(ctx context.Context, doc *mindmap.Document, themes *mindmap.ThemeSet, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(doc, nodelink.Options{
		Detailed: opts.Detailed,
		RankDir:  opts.RankDir(),
		Themes:   themes,
	})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = json.MarshalIndent(struct {
				VizType string `json:"viz_type"`
				DOT     string `json:"dot"`
			}{opts.VizType, dot}, "", "  ")
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderPNG paints doc on a raster surface and encodes it.
// A scale of 0 means [DefaultScale].
func RenderPNG(r *radial.Renderer, doc *mindmap.Document, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultScale
	}
	surface := raster.New(raster.WithScale(scale))
	if !r.Render(surface, doc) {
		return nil, fmt.Errorf("nothing to render")
	}
	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderSVG paints doc as a standalone SVG document.
func RenderSVG(r *radial.Renderer, doc *mindmap.Document, embedFonts bool) []byte {
	var opts []svg.Option
	if embedFonts {
		opts = append(opts, svg.WithEmbeddedFonts())
	}
	surface := svg.New(opts...)
	r.Render(surface, doc)
	return surface.Bytes()
}

// Scene is the JSON output of a radial render: the resolved style, the
// geometry of every drawn node and the display list in paint order.
type Scene struct {
	VizType    string                 `json:"viz_type"`
	Style      mindmap.EffectiveStyle `json:"style"`
	Placements []radial.Placement     `json:"placements"`
	Canvas     *record.Recorder       `json:"canvas"`
}

// Layout records a radial render of doc without rasterizing it.
func Layout(doc *mindmap.Document, themes *mindmap.ThemeSet) Scene {
	scene := Scene{
		VizType:    VizTypeRadial,
		Style:      mindmap.Resolve(doc, themes),
		Placements: []radial.Placement{},
		Canvas:     record.New(),
	}
	r := radial.New(radial.WithThemes(themes), radial.WithPlacementHook(func(p radial.Placement) {
		scene.Placements = append(scene.Placements, p)
	}))
	r.Render(scene.Canvas, doc)
	return scene
}

// RenderJSON serializes the recorded [Scene] of doc.
func RenderJSON(doc *mindmap.Document, themes *mindmap.ThemeSet) ([]byte, error) {
	return json.MarshalIndent(Layout(doc, themes), "", "  ")
}
