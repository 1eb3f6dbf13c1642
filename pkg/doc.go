// Package pkg holds the public libraries of mindmap.
//
// # Overview
//
// Mindmap turns indented outlines into radial mind maps: the title sits in a
// circle near the top of an 800×600 canvas and each level of the outline
// fans out around its parent.
//
//  1. [outline] - outline text to a [mindmap.Document]
//  2. [mindmap] - the document model, validation and themes
//  3. [render] - drawing surfaces, text wrapping and the radial and
//     node-link renderers
//  4. [pipeline] - generate → render orchestration with caching
//  5. [cache] - file, Redis and no-op cache backends
//
// # Architecture
//
//	outline text
//	     ↓
//	[outline] Generate
//	     ↓
//	[mindmap] Document (JSON / YAML via [io])
//	     ↓
//	[render/radial] Renderer → [render/canvas] Surface
//	     ↓
//	PNG / SVG / PDF / JSON
//
// # Quick Start
//
//	doc, err := outline.Generate(outline.Request{
//	    Title:   "Q3 plan",
//	    Content: "Goals\n  Revenue\nRisks",
//	})
//	if err != nil {
//	    return err
//	}
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, outline.Request{Title: "Q3 plan", Content: content},
//	    pipeline.Options{Formats: []string{pipeline.FormatPNG}})
//
// [outline]: github.com/matzehuels/mindmap/pkg/outline
// [mindmap]: github.com/matzehuels/mindmap/pkg/mindmap
// [mindmap.Document]: github.com/matzehuels/mindmap/pkg/mindmap#Document
// [io]: github.com/matzehuels/mindmap/pkg/io
// [render]: github.com/matzehuels/mindmap/pkg/render
// [render/radial]: github.com/matzehuels/mindmap/pkg/render/radial
// [render/canvas]: github.com/matzehuels/mindmap/pkg/render/canvas
// [pipeline]: github.com/matzehuels/mindmap/pkg/pipeline
// [cache]: github.com/matzehuels/mindmap/pkg/cache
package pkg
