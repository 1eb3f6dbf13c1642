// Package observability lets a binary observe the pipeline, the caches and
// the HTTP API without those packages depending on a metrics or tracing
// library.
//
// Libraries emit events through the accessors:
//
//	observability.Pipeline().OnRenderStart(ctx, vizType, formats)
//	// ... render ...
//	observability.Pipeline().OnRenderComplete(ctx, vizType, formats, elapsed, err)
//
// and main (or a command such as serve) installs implementations at startup:
//
//	restore := observability.SetPipelineHooks(myHooks)
//	defer restore()
//
// Until something is installed every accessor returns a no-op.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the mind-map pipeline.
type PipelineHooks interface {
	// Generate events (outline text to document)
	OnGenerateStart(ctx context.Context, title string)
	OnGenerateComplete(ctx context.Context, title string, nodeCount int, duration time.Duration, err error)

	// Render events (document to artifacts)
	OnRenderStart(ctx context.Context, vizType string, formats []string)
	OnRenderComplete(ctx context.Context, vizType string, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// keyType is "document" or "artifact".
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	// OnError is called for responses with a 5xx status.
	OnError(ctx context.Context, method, path string, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, string) {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, []string) {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// registry holds the installed implementation of one hook interface.
type registry[T any] struct {
	v    atomic.Pointer[T]
	noop T
}

func (r *registry[T]) get() T {
	if p := r.v.Load(); p != nil {
		return *p
	}
	return r.noop
}

// set installs h and returns a func restoring the previous hooks. A nil h
// leaves the registry unchanged.
func (r *registry[T]) set(h T, isNil bool) func() {
	if isNil {
		return func() {}
	}
	prev := r.v.Swap(&h)
	return func() { r.v.Store(prev) }
}

var (
	pipelineHooks = &registry[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheHooks    = &registry[CacheHooks]{noop: NoopCacheHooks{}}
	httpHooks     = &registry[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetPipelineHooks installs pipeline hooks and returns a restore func.
func SetPipelineHooks(h PipelineHooks) func() { return pipelineHooks.set(h, h == nil) }

// SetCacheHooks installs cache hooks and returns a restore func.
func SetCacheHooks(h CacheHooks) func() { return cacheHooks.set(h, h == nil) }

// SetHTTPHooks installs HTTP hooks and returns a restore func.
func SetHTTPHooks(h HTTPHooks) func() { return httpHooks.set(h, h == nil) }

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return pipelineHooks.get() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheHooks.get() }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpHooks.get() }

// Reset restores the no-op hooks everywhere.
func Reset() {
	pipelineHooks.v.Store(nil)
	cacheHooks.v.Store(nil)
	httpHooks.v.Store(nil)
}
