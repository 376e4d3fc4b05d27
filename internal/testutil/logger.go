// Package testutil provides test helpers for structured logging.
package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// CaptureHandler is a slog.Handler that records every log entry so tests
// can assert on what a component logged.
type CaptureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewCaptureLogger returns a logger backed by a CaptureHandler.
func NewCaptureLogger() (*slog.Logger, *CaptureHandler) {
	h := &CaptureHandler{}
	return slog.New(h), h
}

// Enabled always returns true so every level is recorded.
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

// Handle records the entry.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

// WithAttrs returns the handler unchanged; attrs are not needed for assertions.
func (h *CaptureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

// WithGroup returns the handler unchanged.
func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// Records returns a snapshot of everything logged so far.
func (h *CaptureHandler) Records() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]slog.Record, len(h.records))
	copy(out, h.records)
	return out
}

// CountLevel returns how many entries were logged at the given level.
func (h *CaptureHandler) CountLevel(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}
