package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// logger receives layout debug output. It discards everything until
// SetLogger or OpenLog installs a real one, since the terminal itself is the
// UI and cannot carry log lines.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger replaces the package logger. A nil logger restores the default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = l
}

// OpenLog installs a logger writing to cfg.File. Debug enables debug-level
// records. The returned closer closes the file; it is a no-op when logging
// is not configured.
func OpenLog(cfg LogConfig) (io.Closer, error) {
	if cfg.File == "" {
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return f, nil
}
