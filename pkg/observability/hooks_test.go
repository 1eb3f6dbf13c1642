package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingHooks struct {
	NoopPipelineHooks
	NoopCacheHooks
	NoopHTTPHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnRenderStart(_ context.Context, vizType string, _ []string) {
	h.add("render:" + vizType)
}

func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string) { h.add("hit:" + keyType) }

func (h *recordingHooks) OnRequest(_ context.Context, method, path string) {
	h.add(method + " " + path)
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	Pipeline().OnGenerateComplete(ctx, "Roadmap", 12, time.Second, nil)
	Cache().OnCacheSet(ctx, "artifact", 1024)
	HTTP().OnResponse(ctx, "POST", "/api/mindmap/generate", 200, time.Second)
}

func TestInstalledHooksReceiveEvents(t *testing.T) {
	t.Cleanup(Reset)
	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetCacheHooks(rec)
	SetHTTPHooks(rec)

	ctx := context.Background()
	Pipeline().OnRenderStart(ctx, "radial", []string{"png"})
	Cache().OnCacheHit(ctx, "document")
	HTTP().OnRequest(ctx, "GET", "/api/mindmap/health")

	want := []string{"render:radial", "hit:document", "GET /api/mindmap/health"}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, rec.events[i], want[i])
		}
	}
}

func TestRestore(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	outer := &recordingHooks{}
	restoreOuter := SetPipelineHooks(outer)
	inner := &recordingHooks{}
	restoreInner := SetPipelineHooks(inner)

	if Pipeline() != inner {
		t.Fatal("Pipeline() should return the latest hooks")
	}
	restoreInner()
	if Pipeline() != outer {
		t.Error("restore should reinstate the previous hooks")
	}
	restoreOuter()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T after restoring everything, want no-op", Pipeline())
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)
	rec := &recordingHooks{}
	SetCacheHooks(rec)
	SetCacheHooks(nil)()

	if Cache() != rec {
		t.Error("SetCacheHooks(nil) should leave the installed hooks")
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Cleanup(Reset)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetHTTPHooks(&recordingHooks{})
		}()
		go func() {
			defer wg.Done()
			HTTP().OnError(context.Background(), "GET", "/", nil)
		}()
	}
	wg.Wait()
}
