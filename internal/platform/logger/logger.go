package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger writing to stdout. Level is Info unless
// CIMS_LOG_LEVEL=debug.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("CIMS_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
