package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LoggerConfig configures the application logger.
type LoggerConfig struct {
	// Level is the minimum level to output.
	Level slog.Level
	// JSON selects the JSON handler instead of text.
	JSON bool
	// Output is where logs are written. Nil discards them.
	Output io.Writer
}

// ParseLogLevel parses a level name. Unknown names map to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// NewLogger creates a logger from cfg.
func NewLogger(cfg LoggerConfig) *slog.Logger {
	if cfg.Output == nil {
		return slog.New(slog.DiscardHandler)
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return slog.New(handler)
}

// WithComponent returns l tagged with a component name. A nil l discards.
func WithComponent(l *slog.Logger, component string) *slog.Logger {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return l.With("component", component)
}

// OpenLogFile opens path for appending, creating its directory.
// The terminal belongs to the UI, so the host logs to a file.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
