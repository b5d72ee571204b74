package config

import (
	"io"
	"log/slog"
)

// NewLogger builds the slog.Logger described by the log section. Validate must have passed.
func NewLogger(cfg Log, w io.Writer) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == LogFormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}
