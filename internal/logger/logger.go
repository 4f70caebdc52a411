// ABOUTME: Structured logging configuration using log/slog
// ABOUTME: Configures the default logger for stderr or, while the TUI owns the terminal, a debug log file

package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DebugLogName is the log file used while the terminal UI is running
const DebugLogName = "debug.log"

// Init configures the default slog logger to write to w.
// level: debug, info, warn, error (default: warn)
// format: text, json (default: text)
func Init(w io.Writer, level, format string) {
	slog.SetDefault(slog.New(newHandler(w, level, format)))
}

// InitFile points the default logger at <configDir>/debug.log so log lines
// never interfere with the terminal display. Callers close the file on exit.
func InitFile(configDir, level, format string) (io.Closer, error) {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(configDir, DebugLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	Init(f, level, format)
	return f, nil
}

func newHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	if strings.ToLower(format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
