package pullsync

import (
	"context"
	"log/slog"
)

type contextKey struct{ name string }

var loggerKey = &contextKey{"logger"}

// ContextWithLogger attaches a logger that resolution steps use instead of
// their own. The resolver uses this to carry per-run attributes.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// loggerFrom returns the context logger, or fallback scoped to job.
func loggerFrom(ctx context.Context, fallback *slog.Logger, job JobData) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return fallback.With("owner", job.Owner, "repo", job.Repo)
}
