// Package diaglog is Instalog's internal diagnostic logger: it is never
// the report itself (that goes through logsink.Sink exclusively), only
// the facade constructors' and CLI wiring's own "what went wrong while
// producing the report" trail.
package diaglog

import (
	"io"
	"log/slog"
)

// L is the global logger instance, discarding all output until Init runs.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	// Verbose selects a human-readable TextHandler on stderr; without it
	// all output is discarded. Set from the CLI's --verbose flag.
	Verbose bool
	Level   slog.Level
	Writer  io.Writer // defaults to os.Stderr when Verbose, discarded otherwise
}

// Init configures L. Call once from main before any facade construction.
func Init(opts Options, stderr io.Writer) {
	if !opts.Verbose {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	w := opts.Writer
	if w == nil {
		w = stderr
	}
	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}
	L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
