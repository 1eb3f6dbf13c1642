// Package pipeline provides the generate → render pipeline for mind maps.
//
// This package implements the complete pipeline that is used by both the CLI
// and the HTTP API. By centralizing this logic, both entry points validate,
// cache and render identically.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: Turn an outline request into a [mindmap.Document]
//  2. Render: Paint the document in one or more formats (PNG, SVG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, outline.Request{
//	    Title:   "Roadmap",
//	    Content: "Build\n  API\nShip",
//	}, pipeline.Options{Formats: []string{"png"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Run individual stages:
//
//	doc, err := runner.Generate(ctx, req)
//	artifacts, err := runner.Render(ctx, doc, opts)
package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Visualization types. Everything but radial is drawn by Graphviz; tree and
// vertical run top-down, horizontal left to right.
const (
	VizTypeRadial     = mindmap.LayoutRadial
	VizTypeNodelink   = mindmap.LayoutNodelink
	VizTypeTree       = mindmap.LayoutTree
	VizTypeVertical   = mindmap.LayoutVertical
	VizTypeHorizontal = mindmap.LayoutHorizontal

	DefaultVizType = VizTypeRadial
)

// DefaultScale is the PNG device pixel ratio.
const DefaultScale = 2.0

// MaxScale bounds the PNG device pixel ratio (an 800×600 canvas at 8x is
// already 6400×4800 pixels).
const MaxScale = 8.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeRadial:     true,
	VizTypeNodelink:   true,
	VizTypeTree:       true,
	VizTypeVertical:   true,
	VizTypeHorizontal: true,
}

// VizTypes returns the supported visualization types, default first.
func VizTypes() []string { return mindmap.Layouts() }

// Formats returns the supported output formats in display order.
func Formats() []string { return []string{FormatPNG, FormatSVG, FormatPDF, FormatJSON} }

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains the render configuration.
// This struct supports JSON serialization for API requests.
type Options struct {
	VizType    string   `json:"viz_type,omitempty"`
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	EmbedFonts bool     `json:"embed_fonts,omitempty"`
	// Detailed adds depth, ID and child count to node-link labels.
	Detailed bool `json:"detailed,omitempty"`
	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized); defaults to the runner's logger.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the generated document.
	Document *mindmap.Document

	// DocumentHash is the content hash of the document.
	DocumentHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	Depth        int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the document came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: %s)", vizType, strings.Join(VizTypes(), ", "))
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ValidateAndSetDefaults applies defaults and validates the options.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be between 0 and %g, got %g", MaxScale, o.Scale)
	}
	o.Formats = dedupe(o.Formats)
	o.validated = true
	return nil
}

// IsNodelink returns true if the visualization is drawn by Graphviz.
func (o *Options) IsNodelink() bool {
	return o.VizType != "" && o.VizType != VizTypeRadial
}

// RankDir returns the Graphviz rank direction for node-link output.
func (o *Options) RankDir() string {
	if o.VizType == VizTypeHorizontal {
		return "LR"
	}
	return "TB"
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format, themesHash string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		VizType:    o.VizType,
		Format:     format,
		ThemesHash: themesHash,
	}
	// Scale only affects raster output; embedded fonts only SVG-based output.
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	if format == FormatSVG || format == FormatPDF {
		opts.EmbedFonts = o.EmbedFonts
	}
	if o.IsNodelink() {
		opts.Detailed = o.Detailed
	}
	return opts
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// String formats the options for log output.
func (o Options) String() string {
	return fmt.Sprintf("%s %v scale=%g", o.VizType, o.Formats, o.Scale)
}
