// Package testutil holds logging helpers shared by gofluff's package tests.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NewTestLogger returns a debug-level logger that writes through t.Log, so
// output only shows for failing tests or under -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(newTestHandler(t, slog.LevelDebug))
}

func newTestHandler(t testing.TB, level slog.Level) slog.Handler {
	return slog.NewTextHandler(tbWriter{t}, &slog.HandlerOptions{Level: level})
}

type tbWriter struct {
	t testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// LogRecorder keeps the messages logged through a recording logger.
// It is safe for concurrent use.
type LogRecorder struct {
	mu       sync.Mutex
	messages []string
}

// Messages returns a copy of the recorded messages in log order.
func (r *LogRecorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Has reports whether msg was logged at least once.
func (r *LogRecorder) Has(msg string) bool {
	for _, m := range r.Messages() {
		if m == msg {
			return true
		}
	}
	return false
}

func (r *LogRecorder) add(msg string) {
	r.mu.Lock()
	r.messages = append(r.messages, msg)
	r.mu.Unlock()
}

// NewRecordingLogger is NewTestLogger plus a recorder of every message,
// for tests that assert on what was logged.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *LogRecorder) {
	t.Helper()
	rec := &LogRecorder{}
	return slog.New(recordingHandler{next: newTestHandler(t, slog.LevelDebug), rec: rec}), rec
}

type recordingHandler struct {
	next slog.Handler
	rec  *LogRecorder
}

func (h recordingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h recordingHandler) Handle(ctx context.Context, r slog.Record) error {
	h.rec.add(r.Message)
	return h.next.Handle(ctx, r)
}

func (h recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return recordingHandler{next: h.next.WithAttrs(attrs), rec: h.rec}
}

func (h recordingHandler) WithGroup(name string) slog.Handler {
	return recordingHandler{next: h.next.WithGroup(name), rec: h.rec}
}
