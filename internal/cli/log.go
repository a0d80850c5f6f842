package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pandiff/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Diffed 2 documents (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports diff and cache events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnDiffStart(_ context.Context, beforeBlocks, afterBlocks int) {
	h.logger.Debug("aligning blocks", "before", beforeBlocks, "after", afterBlocks)
}

func (h *logHooks) OnDiffComplete(_ context.Context, stats observability.DiffStats, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("diff failed", "err", err)
		return
	}
	h.logger.Debug("aligned blocks",
		"unchanged", stats.Unchanged,
		"added", stats.Added,
		"removed", stats.Removed,
		"duration", d)
}

func (h *logHooks) OnDecorateComplete(_ context.Context, format string, d time.Duration, err error) {
	h.logger.Debug("decorated", "format", format, "duration", d, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnCacheError(_ context.Context, keyType string, err error) {
	h.logger.Debug("cache error", "type", keyType, "err", err)
}
