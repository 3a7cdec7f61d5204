package app

import (
	"io"
	"log/slog"
)

// parseLevel maps a CLI level name to a slog.Level, defaulting to info.
func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger creates an isolated slog.Logger writing to logW. It does not
// touch the global logger.
func newLogger(levelStr, formatStr string, logW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(levelStr)}
	if formatStr == "text" {
		return slog.New(slog.NewTextHandler(logW, opts))
	}
	return slog.New(slog.NewJSONHandler(logW, opts))
}
