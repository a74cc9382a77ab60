// Package log provides structured logging for the schnorrsig command line
// front end. It wraps Go's log/slog with small conveniences such as
// per-module child loggers. Nothing in the cryptographic core imports this
// package: the core reports failure as a boolean, never a log line.
package log

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with a thin convenience API.
type Logger struct {
	inner *slog.Logger
}

// defaultLogger is the process-wide logger Default returns.
var defaultLogger *Logger

func init() {
	defaultLogger = New(slog.LevelInfo)
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{inner: slog.New(h)}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" attribute. This
// is how cmd/schnorrsig tags its log lines with the subcommand that produced
// them.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
