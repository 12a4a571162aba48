// Package logging carries an operation-scoped slog logger through
// context so services log with consistent attributes without importing
// any transport layer.
package logging

import (
	"context"
	"log/slog"
)

// contextKey prevents collisions with other context values.
type contextKey string

const loggerKey = contextKey("logger")

// IntoCtx stores the logger in the context.
func IntoCtx(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromCtx retrieves the logger from the context, falling back to the
// default logger when none was attached.
func FromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
