package server

import (
	"encoding/base64"
	"mime"
	"net/http"
	"time"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

type option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type themeOption struct {
	Value   string        `json:"value"`
	Label   string        `json:"label"`
	Palette mindmap.Style `json:"palette"`
}

var layoutOptions = []option{
	{Value: pipeline.VizTypeRadial, Label: "Radial", Description: "Nodes fan out around the title"},
	{Value: pipeline.VizTypeTree, Label: "Tree", Description: "Top-down tree"},
	{Value: pipeline.VizTypeHorizontal, Label: "Horizontal", Description: "Left-to-right tree"},
	{Value: pipeline.VizTypeVertical, Label: "Vertical", Description: "Top-down tree"},
	{Value: pipeline.VizTypeNodelink, Label: "Node-link", Description: "Top-down tree laid out by Graphviz"},
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"status":    "ok",
		"version":   buildinfo.Short(),
		"timestamp": s.now().Format(time.RFC3339),
		"message":   "mind map service is running",
	})
}

func (s *Server) handleThemes(w http.ResponseWriter, _ *http.Request) {
	all := s.runner.Themes.All()
	themes := make([]themeOption, 0, len(all))
	for _, t := range all {
		themes = append(themes, themeOption{Value: t.Name, Label: t.Label, Palette: t.Palette})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    themes,
		"message": "themes listed",
	})
}

func (s *Server) handleLayouts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    layoutOptions,
		"message": "layouts listed",
	})
}

// generate runs the full pipeline for an outline request and returns the
// document with its PNG preview.
func (s *Server) generate(r *http.Request, req outline.Request) (*pipeline.Result, error) {
	if req.Theme == "" {
		req.Theme = s.defaultTheme
	}
	return s.runner.Execute(r.Context(), req, pipeline.Options{
		Formats: []string{pipeline.FormatPNG},
		Scale:   s.scale,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req outline.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "provide a title and content", err)
		return
	}
	result, err := s.generate(r, req)
	if err != nil {
		writeError(w, r, "mind map generation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"data":         result.Document,
		"image_base64": base64.StdEncoding.EncodeToString(result.Artifacts[pipeline.FormatPNG]),
		"message":      "mind map generated",
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req outline.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "provide a title and content", err)
		return
	}
	result, err := s.generate(r, req)
	if err != nil {
		writeError(w, r, "preview generation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"image_base64": base64.StdEncoding.EncodeToString(result.Artifacts[pipeline.FormatPNG]),
		"message":      "preview generated",
	})
}

// decodeDocument reads a document body. A document without nodes is valid
// and renders as the header and title circle.
func (s *Server) decodeDocument(w http.ResponseWriter, r *http.Request) (*mindmap.Document, error) {
	var doc mindmap.Document
	if err := decodeJSON(w, r, &doc); err != nil {
		return nil, err
	}
	if doc.Theme == "" {
		doc.Theme = s.defaultTheme
	}
	return &doc, nil
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	doc, err := s.decodeDocument(w, r)
	if err == nil && len(doc.Nodes) == 0 {
		err = errors.New(errors.ErrCodeInvalidDocument, "missing mind map nodes").WithField("nodes")
	}
	if err != nil {
		writeError(w, r, "provide the complete mind map data", err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), doc, pipeline.Options{
		Formats: []string{pipeline.FormatPNG},
		Scale:   s.scale,
	})
	if err != nil {
		writeError(w, r, "download failed", err)
		return
	}

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": downloadName(doc.Title, s.now()),
	}))
	writeBlob(w, contentTypes[pipeline.FormatPNG], artifacts[pipeline.FormatPNG])
}

// downloadName returns "<title>_<YYYYmmdd_HHMMSS>.png".
func downloadName(title string, t time.Time) string {
	if title == "" {
		title = "mindmap"
	}
	return errors.SanitizeFilename(title) + "_" + t.Format("20060102_150405") + ".png"
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		VizType:    q.Get("type"),
		Scale:      s.scale,
		EmbedFonts: s.embedFonts,
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatPNG
	}
	opts.Formats = []string{format}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, r, "unsupported render options", err)
		return
	}

	doc, err := s.decodeDocument(w, r)
	if err != nil {
		writeError(w, r, "provide the complete mind map data", err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), doc, opts)
	if err != nil {
		writeError(w, r, "render failed", err)
		return
	}
	writeBlob(w, contentTypes[format], artifacts[format])
}
