// Package cli implements the stackview command-line interface.
//
// # Commands
//
//   - init: write a starter stack document
//   - synth: print the constraints synthesized for a document
//   - render: draw the constraint graph as DOT, SVG, PNG, PDF or JSON
//   - diff: compare the constraint sets of two documents
//   - simulate: replay a document's scripted steps against an in-memory host
//   - watch: re-render a document whenever it changes
//   - play: toggle items and configuration interactively
//   - cache: manage the synthesis and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels on the command's context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level with "HH:MM:SS.ms"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Synthesized card (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the context's logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
