package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/internal/server"
	"github.com/matzehuels/mindmap/pkg/observability"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mind map HTTP API",
		Long: `Serve the mind map HTTP API.

Endpoints (all under /api/mindmap):
  GET  /health     service status and version
  GET  /themes     available themes and palettes
  GET  /layouts    available visualization types
  POST /generate   outline → document + PNG preview (base64)
  POST /preview    outline → PNG preview (base64)
  POST /download   document → PNG attachment
  POST /render     document → ?format=png|svg|pdf|json&type=radial|nodelink

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	hooks := newLogHooks(logger)
	defer observability.SetPipelineHooks(hooks)()
	defer observability.SetCacheHooks(hooks)()
	defer observability.SetHTTPHooks(hooks)()

	srv := server.New(runner, logger,
		server.WithRenderDefaults(cfg.Render.Scale, cfg.Render.EmbedFonts),
		server.WithDefaultTheme(cfg.Render.DefaultTheme),
	)

	printSuccess("Serving mind map API")
	printKeyValue("Address", StyleLink.Render("http://"+displayAddr(addr)+"/api/mindmap/health"))
	printKeyValue("Cache", cfg.Cache.Backend)
	printNewline()

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return err
	}
	hooks.summary()
	return nil
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

// =============================================================================
// logHooks - Log-based observability for the server
// =============================================================================

// logHooks logs pipeline events at debug level and counts requests and
// cache lookups for the shutdown summary.
type logHooks struct {
	observability.NoopHTTPHooks

	logger   *log.Logger
	requests atomic.Int64
	errors   atomic.Int64
	hits     atomic.Int64
	misses   atomic.Int64
}

func newLogHooks(logger *log.Logger) *logHooks {
	return &logHooks{logger: logger}
}

func (h *logHooks) OnGenerateStart(_ context.Context, title string) {
	h.logger.Debug("generate started", "title", title)
}

func (h *logHooks) OnGenerateComplete(_ context.Context, title string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("generate failed", "title", title, "error", err)
		return
	}
	h.logger.Debug("generate complete", "title", title, "nodes", nodeCount, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, vizType string, formats []string) {
	h.logger.Debug("render started", "type", vizType, "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, vizType string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "type", vizType, "error", err)
		return
	}
	h.logger.Debug("render complete", "type", vizType, "formats", formats, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.hits.Add(1)
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.misses.Add(1)
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(context.Context, string, string) {
	h.requests.Add(1)
}

func (h *logHooks) OnError(_ context.Context, method, path string, err error) {
	h.errors.Add(1)
	h.logger.Error("request failed", "method", method, "path", path, "error", err)
}

// summary prints request and cache counters.
func (h *logHooks) summary() {
	printInfo("Served %d request(s), %d failed", h.requests.Load(), h.errors.Load())
	printDetail("cache: %d hit(s), %d miss(es)", h.hits.Load(), h.misses.Load())
}
