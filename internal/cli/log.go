package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/musicbox/pkg/observability"
)

// newLogger creates a logger with short timestamps ("14:32:01.45") that
// filters messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of an operation when it is done.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Laid out song.mid (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// EnableDebugHooks routes pipeline and cache events to the debug log.
func (c *CLI) EnableDebugHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

// logHooks implements the observability hooks on top of a logger.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnImportComplete(_ context.Context, tracks int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("import failed", "err", err)
		return
	}
	h.logger.Debug("imported midi", "tracks", tracks, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnLayoutStart(_ context.Context, noteCount int) {
	h.logger.Debug("layout start", "notes", noteCount)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, strips, pages int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "err", err)
		return
	}
	h.logger.Debug("layout done", "strips", strips, "pages", pages, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render start", "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, bytes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("render done", "format", format, "bytes", bytes, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}
