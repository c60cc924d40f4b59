package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Handlers and services receive it through
// constructor injection; nothing logs through a package-level global.
func New(environment string) *slog.Logger {
	level := slog.LevelInfo
	if environment == "development" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
