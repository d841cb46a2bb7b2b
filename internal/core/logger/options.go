package logger

import (
	"io"
	"log/slog"
)

// config holds the logger configuration
type config struct {
	level  slog.Level
	output io.Writer
}

// Option is a function that configures a logger
type Option func(*config)

// WithLevel sets the minimum log level
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithOutput sets the output writer for logs
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithDebug is a convenience option to enable debug logging
func WithDebug() Option {
	return WithLevel(slog.LevelDebug)
}
