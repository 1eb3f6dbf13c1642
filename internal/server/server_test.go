package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := New(runner, logger, WithRenderDefaults(1, false), WithClock(func() time.Time { return fixedTime }))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func decodePNG(t *testing.T, data []byte) {
	t.Helper()
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("decode png: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/mindmap/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decode(t, resp)
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
	if body["timestamp"] != fixedTime.Format(time.RFC3339) {
		t.Errorf("timestamp = %v", body["timestamp"])
	}
}

func TestThemesAndLayouts(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path  string
		count int
		first string
	}{
		{"/api/mindmap/themes", 5, "default"},
		{"/api/mindmap/layouts", 5, "radial"},
	}

	for _, tt := range tests {
		resp, err := http.Get(ts.URL + tt.path)
		if err != nil {
			t.Fatal(err)
		}
		var body struct {
			Success bool `json:"success"`
			Data    []struct {
				Value string `json:"value"`
			} `json:"data"`
		}
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}
		if !body.Success || len(body.Data) != tt.count {
			t.Errorf("%s: success=%v count=%d, want true/%d", tt.path, body.Success, len(body.Data), tt.count)
			continue
		}
		if body.Data[0].Value != tt.first {
			t.Errorf("%s: first = %q, want %q", tt.path, body.Data[0].Value, tt.first)
		}
	}
}

func TestGenerate(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/api/mindmap/generate", `{"title":"Plan","content":"- a\n  - b\n- c"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Title string `json:"title"`
			Theme string `json:"theme"`
			Nodes []struct {
				Text     string `json:"text"`
				Children []any  `json:"children"`
			} `json:"nodes"`
		} `json:"data"`
		Image string `json:"image_base64"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Success || body.Data.Title != "Plan" {
		t.Errorf("success=%v title=%q", body.Success, body.Data.Title)
	}
	if len(body.Data.Nodes) != 2 || len(body.Data.Nodes[0].Children) != 1 {
		t.Errorf("nodes = %+v, want a(b), c", body.Data.Nodes)
	}
	if body.Data.Theme != "default" {
		t.Errorf("theme = %q, want default", body.Data.Theme)
	}
	img, err := base64.StdEncoding.DecodeString(body.Image)
	if err != nil {
		t.Fatal(err)
	}
	decodePNG(t, img)
}

func TestGenerateErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
		field  string
	}{
		{"missing title", "/api/mindmap/generate", `{"content":"a"}`, 400, "INVALID_INPUT", "title"},
		{"missing content", "/api/mindmap/preview", `{"title":"a"}`, 400, "INVALID_INPUT", "content"},
		{"bad json", "/api/mindmap/generate", `{`, 400, "INVALID_INPUT", ""},
		{"empty body", "/api/mindmap/generate", ``, 400, "INVALID_INPUT", ""},
		{"bad color", "/api/mindmap/generate", `{"title":"a","content":"b","style":{"nodeColor":"red"}}`, 400, "INVALID_COLOR", "nodeColor"},
		{"no nodes", "/api/mindmap/download", `{"title":"a","nodes":[]}`, 400, "INVALID_DOCUMENT", "nodes"},
		{"bad layout", "/api/mindmap/generate", `{"title":"a","content":"b","layout":"force"}`, 400, "INVALID_VIZ_TYPE", ""},
		{"bad format", "/api/mindmap/render?format=gif", `{"title":"a","nodes":[{"text":"b"}]}`, 400, "INVALID_FORMAT", ""},
		{"bad type", "/api/mindmap/render?type=tower", `{"title":"a","nodes":[{"text":"b"}]}`, 400, "INVALID_VIZ_TYPE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decode(t, resp)
			if body["success"] != false {
				t.Errorf("success = %v, want false", body["success"])
			}
			if body["code"] != tt.code {
				t.Errorf("code = %v, want %s (error: %v)", body["code"], tt.code, body["error"])
			}
			if field, _ := body["field"].(string); field != tt.field {
				t.Errorf("field = %q, want %q", field, tt.field)
			}
		})
	}
}

func TestGenerateLayouts(t *testing.T) {
	ts := newTestServer(t)
	for _, layout := range []string{"radial", "tree", "horizontal", "vertical", "nodelink"} {
		t.Run(layout, func(t *testing.T) {
			resp := post(t, ts, "/api/mindmap/generate", `{"title":"Plan","content":"a\n  b","layout":"`+layout+`"}`)
			body := decode(t, resp)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200 (body: %v)", resp.StatusCode, body)
			}
			data, _ := body["data"].(map[string]any)
			if data["layout"] != layout {
				t.Errorf("layout = %v, want %s", data["layout"], layout)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/api/mindmap/preview", `{"title":"Plan","content":"a"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decode(t, resp)
	if _, ok := body["data"]; ok {
		t.Error("preview should not return the document")
	}
	img, err := base64.StdEncoding.DecodeString(body["image_base64"].(string))
	if err != nil {
		t.Fatal(err)
	}
	decodePNG(t, img)
}

func TestDownload(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/api/mindmap/download", `{"title":"Q3: plan","nodes":[{"text":"a"}]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}

	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "Q3_ plan_20240309_140507.png"; params["filename"] != want {
		t.Errorf("filename = %q, want %q", params["filename"], want)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	decodePNG(t, data)
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)
	doc := `{"title":"T","nodes":[{"text":"a"},{"text":"b"}]}`

	tests := []struct {
		query       string
		contentType string
		contains    string
	}{
		{"?format=svg", "image/svg+xml", "<svg"},
		{"?format=json", "application/json", `"placements"`},
		{"?format=svg&type=nodelink", "image/svg+xml", "<svg"},
		{"", "image/png", "PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, ts, "/api/mindmap/render"+tt.query, doc)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			data, _ := io.ReadAll(resp.Body)
			if !bytes.Contains(data, []byte(tt.contains)) {
				t.Errorf("body does not contain %q", tt.contains)
			}
		})
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/api/mindmap/render?format=json", `{"title":"T","nodes":[]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var scene struct {
		Placements []any `json:"placements"`
		Canvas     struct {
			Ops []struct {
				Kind string `json:"op"`
			} `json:"ops"`
		} `json:"canvas"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&scene); err != nil {
		t.Fatal(err)
	}
	if len(scene.Placements) != 0 {
		t.Errorf("placements = %d, want 0", len(scene.Placements))
	}
	circles := 0
	for _, op := range scene.Canvas.Ops {
		if op.Kind == "circle" {
			circles++
		}
	}
	if circles != 1 {
		t.Errorf("circle ops = %d, want 1 (the title circle)", circles)
	}
}

func TestNotFoundAndCORS(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/mindmap/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if body := decode(t, resp); body["code"] != "NOT_FOUND" {
		t.Errorf("code = %v, want NOT_FOUND", body["code"])
	}

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/mindmap/generate", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	pre, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer pre.Body.Close()
	if got := pre.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(&buf))
	t.Cleanup(func() { log.SetDefault(prev) })

	ts := httptest.NewServer(New(pipeline.NewRunner(nil, nil, log.New(io.Discard)), nil).Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/api/mindmap/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if buf.Len() != 0 {
		t.Errorf("nil logger wrote to the default logger: %q", buf.String())
	}
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Plan", "Plan_20240309_140507.png"},
		{"", "mindmap_20240309_140507.png"},
		{"a/b", "a_b_20240309_140507.png"},
	}
	for _, tt := range tests {
		if got := downloadName(tt.title, fixedTime); got != tt.want {
			t.Errorf("downloadName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
