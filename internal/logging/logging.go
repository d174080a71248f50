package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// New returns a slog logger rendering through charmbracelet/log.
// Unknown levels fall back to info.
func New(w io.Writer, level string) *slog.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})

	return slog.New(handler)
}

// Setup installs New(w, level) as the slog default.
func Setup(w io.Writer, level string) *slog.Logger {
	logger := New(w, level)
	slog.SetDefault(logger)

	return logger
}
