package core

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys for execution options
type contextKey string

const (
	loggerKey contextKey = "logger"
	runIDKey  contextKey = "runID"
)

// WithLogger attaches the diagnostic logger used by the executors.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// loggerFrom returns the logger from context, or a no-op logger
func loggerFrom(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

// withRunID stamps the context with the id of the current run
func withRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// runIDFrom returns the run id from context, generating a fresh one if absent
func runIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
