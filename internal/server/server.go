// Package server implements the mindmap HTTP API.
//
// All endpoints live under /api/mindmap and speak JSON, except the download
// and render endpoints which answer with the rendered artifact. Errors are
// reported as
//
//	{"success": false, "error": "...", "code": "INVALID_INPUT", "message": "...", "field": "title"}
//
// with the HTTP status derived from the error code.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// shutdownTimeout is how long in-flight requests get after the context ends.
const shutdownTimeout = 10 * time.Second

// Server serves the HTTP API on top of a pipeline runner.
type Server struct {
	runner       *pipeline.Runner
	logger       *log.Logger
	scale        float64
	embedFonts   bool
	defaultTheme string
	now          func() time.Time
}

// Option configures a [Server].
type Option func(*Server)

// WithRenderDefaults sets the PNG scale and SVG font embedding used when a
// request does not choose.
func WithRenderDefaults(scale float64, embedFonts bool) Option {
	return func(s *Server) {
		s.scale = scale
		s.embedFonts = embedFonts
	}
}

// WithDefaultTheme sets the theme applied to requests that name none.
func WithDefaultTheme(name string) Option {
	return func(s *Server) { s.defaultTheme = name }
}

// WithClock replaces time.Now, for deterministic timestamps and filenames.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a server. A nil logger discards request logs.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		runner: runner,
		logger: logger,
		scale:  pipeline.DefaultScale,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router with all middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   "endpoint not found",
			Code:    "NOT_FOUND",
			Message: "the requested endpoint does not exist",
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Error:   "method not allowed",
			Code:    "METHOD_NOT_ALLOWED",
			Message: "the endpoint does not accept this method",
		})
	})

	r.Route("/api/mindmap", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/themes", s.handleThemes)
		r.Get("/layouts", s.handleLayouts)
		r.Post("/generate", s.handleGenerate)
		r.Post("/preview", s.handlePreview)
		r.Post("/download", s.handleDownload)
		r.Post("/render", s.handleRender)
	})

	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
