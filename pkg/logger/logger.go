package logger

import (
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

// Init builds the JSON logger used by the process entrypoint.
func Init(level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	Log = slog.New(handler)
	return Log
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Nop discards everything; used where a logger is optional.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
