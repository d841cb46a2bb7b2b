// Package logger provides structured logging for sprout. It wraps log/slog
// so operational messages go to stderr and never mix with the plain
// path-printing stdout contract of the CLI.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the interface for structured logging in sprout
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, args ...any)
	// Info logs an info message with optional key-value pairs
	Info(msg string, args ...any)
	// Warn logs a warning message with optional key-value pairs
	Warn(msg string, args ...any)
	// Error logs an error message with optional key-value pairs
	Error(msg string, args ...any)
	// With returns a new Logger with additional context fields
	With(args ...any) Logger
}

// slogLogger wraps slog.Logger to implement the Logger interface
type slogLogger struct {
	logger *slog.Logger
}

// New creates a new Logger with the specified configuration
func New(opts ...Option) Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stderr,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	handler := slog.NewTextHandler(cfg.output, &slog.HandlerOptions{
		Level: cfg.level,
	})

	return &slogLogger{
		logger: slog.New(handler),
	}
}

// Nop returns a no-op logger that discards all log messages
func Nop() Logger {
	return &slogLogger{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Default returns a default logger that writes to stderr
func Default() Logger {
	return New()
}

func (l *slogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *slogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *slogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *slogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{
		logger: l.logger.With(args...),
	}
}
