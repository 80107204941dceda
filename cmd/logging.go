package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/codecoach/internal/config"
	"github.com/abhisek/codecoach/internal/store"
)

const logFileName = "codecoach.log"

// newFileLogger writes text logs to codecoach.log next to the database,
// leaving the terminal to the UI. The returned closer flushes the file.
func newFileLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	path := filepath.Join(filepath.Dir(cfg.DBPath), logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel}))
	return logger, f, nil
}

// newServerLogger writes JSON logs to stdout.
func newServerLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

// newCLILogger writes text logs to stderr for one-shot commands.
func newCLILogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
}
