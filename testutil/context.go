// Package testutil provides fixtures shared by pullsync's tests: a fake
// GitHub API, throwaway git repositories and captured resolver logs.
package testutil

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// TestContext returns a context that is canceled when the test ends.
func TestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return ctx
}

// TestLogger returns a debug-level JSON logger and the buffer it writes to.
// Under go test -v each record is also echoed through t.Log.
func TestLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	var w io.Writer = &buf
	if testing.Verbose() {
		w = io.MultiWriter(&buf, tLogWriter{t})
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

type tLogWriter struct{ t *testing.T }

func (w tLogWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
