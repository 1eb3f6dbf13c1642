// Package cli implements the mindmap command-line interface.
//
// Commands turn outlines into mind map documents, render documents to PNG,
// SVG, PDF or JSON, browse layouts in a terminal UI and serve the HTTP API.
// Shared settings come from the TOML config file; see internal/config.
//
// # Commands
//
//   - generate: build a document from an outline and optionally render it
//   - render: render a stored document
//   - inspect: browse computed node placements
//   - themes: list the registered color themes
//   - serve: run the HTTP API
//   - cache: manage the file cache
//
// # Logging
//
// --verbose (-v) enables debug logging. The logger travels in the command
// context and is read back with loggerFromContext.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w with short wall-clock timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the end of a step with its elapsed time. Not safe for
// concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with an "elapsed" field followed by keyvals.
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append([]any{"elapsed", elapsed}, keyvals...)...)
}

type loggerKey struct{}

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the attached logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
