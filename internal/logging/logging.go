// Package logging provides the structured logging helpers shared across the
// service: a component-scoped slog.Logger constructor and the two call
// shapes (LogOperation, LogError) used wherever a goroutine or handler needs
// to report state.
package logging

import (
	"context"
	"io"
	"log/slog"
)

// NewStructuredLogger builds a slog.Logger that writes JSON records to w at
// the given minimum level.
func NewStructuredLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// LogOperation records a successful, noteworthy event at info level.
func LogOperation(logger *slog.Logger, event string, attrs ...slog.Attr) {
	logger.LogAttrs(context.Background(), slog.LevelInfo, event, attrs...)
}

// LogError records a failure at error level, attaching the error itself.
func LogError(logger *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	all := append([]slog.Attr{slog.String("error", err.Error())}, attrs...)
	logger.LogAttrs(context.Background(), slog.LevelError, msg, all...)
}

// SafeCloseWithLogging closes c and logs a failure instead of swallowing
// it. Intended for deferred closes of response bodies and similar resources
// where the caller has no meaningful way to surface a close error.
func SafeCloseWithLogging(c io.Closer, logger *slog.Logger, what string) {
	if err := c.Close(); err != nil {
		LogError(logger, "failed to close resource", err, slog.String("resource", what))
	}
}
