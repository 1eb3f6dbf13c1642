package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/observability"
)

func TestDisplayAddr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{":8080", "localhost:8080"},
		{"0.0.0.0:9000", "0.0.0.0:9000"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := displayAddr(tt.in); got != tt.want {
			t.Errorf("displayAddr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := newLogHooks(newLogger(&buf, log.DebugLevel))

	var (
		_ observability.PipelineHooks = h
		_ observability.CacheHooks    = h
		_ observability.HTTPHooks     = h
	)

	ctx := context.Background()
	h.OnRequest(ctx, "POST", "/api/mindmap/generate")
	h.OnRequest(ctx, "GET", "/api/mindmap/health")
	h.OnCacheMiss(ctx, "document")
	h.OnCacheSet(ctx, "document", 120)
	h.OnCacheHit(ctx, "artifact")
	h.OnGenerateComplete(ctx, "Plan", 4, time.Millisecond, nil)
	h.OnRenderComplete(ctx, "radial", []string{"png"}, time.Millisecond, nil)
	h.OnError(ctx, "POST", "/api/mindmap/render", errors.New("boom"))

	if got := h.requests.Load(); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
	if got := h.errors.Load(); got != 1 {
		t.Errorf("errors = %d, want 1", got)
	}
	if h.hits.Load() != 1 || h.misses.Load() != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", h.hits.Load(), h.misses.Load())
	}

	out := buf.String()
	for _, want := range []string{"cache miss", "generate complete", "nodes=4", "request failed", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}
