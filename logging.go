package main

import (
	"fmt"
	"log/slog"
	"os"
)

var logger *slog.Logger

// initLogging configures the package-level logger from a textual level
// ("debug", "info", "warn", "error").
func initLogging(level string) error {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
	return nil
}

func log() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
