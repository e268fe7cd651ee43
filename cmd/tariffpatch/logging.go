package main

import (
	"io"
	"log/slog"
)

// newLogger returns the diagnostic logger for a command.
// Quiet discards everything; verbose enables debug records.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	if quiet {
		return slog.New(slog.DiscardHandler)
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
