package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/outline"
)

// Cache key types reported to observability hooks.
const (
	keyTypeDocument = "document"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, logger and themes - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options, as long as Themes is not modified
// after startup.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Themes *mindmap.ThemeSet
	// TTL overrides the per-entry cache lifetimes when non-zero.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Themes start as the built-in set; register custom themes before use.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Themes: mindmap.DefaultThemes(),
	}
}

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, req outline.Request, opts Options) (*Result, error) {
	if opts.VizType == "" {
		opts.VizType = req.Layout
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Generate
	generateStart := time.Now()
	doc, generateHit, err := r.GenerateWithCacheInfo(ctx, req, opts.Refresh)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.GenerateTime = time.Since(generateStart)
	result.Stats.NodeCount = doc.NodeCount()
	result.Stats.Depth = doc.Depth()
	result.CacheInfo.GenerateHit = generateHit

	if h, err := cache.HashJSON(doc); err == nil {
		result.DocumentHash = h
	}

	opts.Logger.Info("generated document",
		"nodes", result.Stats.NodeCount,
		"depth", result.Stats.Depth,
		"cached", generateHit,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"type", opts.VizType,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo builds a document from an outline request and
// reports whether it came from the cache. Identical requests return the same
// document, node IDs included, until the cache entry expires.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, req outline.Request, refresh bool) (*mindmap.Document, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, req.Title)
	start := time.Now()

	reqHash, err := cache.HashJSON(req)
	if err != nil {
		return nil, false, fmt.Errorf("hash request: %w", err)
	}
	cacheKey := r.Keyer.DocumentKey(reqHash)

	// Try cache first (unless refresh requested)
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var doc mindmap.Document
			if err := json.Unmarshal(data, &doc); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeDocument)
				hooks.OnGenerateComplete(ctx, req.Title, doc.NodeCount(), time.Since(start), nil)
				return &doc, true, nil // Cache hit
			}
			// If deserialization fails, fall through to regenerate
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeDocument)
	}

	doc, err := outline.Generate(req)
	if err != nil {
		hooks.OnGenerateComplete(ctx, req.Title, 0, time.Since(start), err)
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(doc); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLDocument)); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeDocument, len(data))
		} else {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		}
	}

	hooks.OnGenerateComplete(ctx, req.Title, doc.NodeCount(), time.Since(start), nil)
	return doc, false, nil // Cache miss
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, req outline.Request) (*mindmap.Document, error) {
	doc, _, err := r.GenerateWithCacheInfo(ctx, req, false)
	return doc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// When opts names no viz type, the document's layout hint decides.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *mindmap.Document, opts Options) (map[string][]byte, bool, error) {
	if doc == nil {
		return nil, false, fmt.Errorf("document is nil")
	}
	if opts.VizType == "" {
		opts.VizType = doc.Layout
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.VizType, opts.Formats)
	start := time.Now()

	// Compute cache key from document and theme data
	docHash, err := cache.HashJSON(doc)
	if err != nil {
		return nil, false, fmt.Errorf("hash document: %w", err)
	}
	themesHash, err := cache.HashJSON(r.Themes.All())
	if err != nil {
		return nil, false, fmt.Errorf("hash themes: %w", err)
	}

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format, themesHash))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
				break
			}
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnRenderComplete(ctx, opts.VizType, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	rendered, err := Render(ctx, doc, r.Themes, opts)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.VizType, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format, themesHash))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLArtifact)); err != nil {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	hooks.OnRenderComplete(ctx, opts.VizType, opts.Formats, time.Since(start), nil)
	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc *mindmap.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return artifacts, err
}

// Layout records a radial render of doc with the runner's themes.
func (r *Runner) Layout(doc *mindmap.Document) Scene {
	return Layout(doc, r.Themes)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(fallback time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return fallback
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
