package log

import (
	"io"
	"log/slog"
	"strings"
)

var logLevel = new(slog.LevelVar)

// ConfigureLogging installs a text slog handler on w as the process default
// and sets its level from a name (DEBUG, INFO, WARN, ERROR). Unknown names
// mean INFO.
func ConfigureLogging(level string, w io.Writer) {
	SetLogLevel(ParseLevel(level))
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// SetLogLevel changes the level of the handler installed by ConfigureLogging.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
