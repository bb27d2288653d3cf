// Package logging builds the process logger: the log/slog API backed by
// zerolog.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog"
)

// Config selects the log level and output format.
type Config struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info" env-description:"Log level (debug, info, warn, error)"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text" env-description:"Log output format (text or json)"`
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// New creates a logger writing to w and installs it as the slog default.
func New(cfg Config, w io.Writer) *slog.Logger {
	var zl zerolog.Logger
	if cfg.Format == "json" {
		zl = zerolog.New(w)
	} else {
		noColor := w != os.Stderr && w != os.Stdout
		zl = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: noColor}).With().Caller().Logger()
	}

	handler := slogzerolog.Option{
		Level:  ParseLevel(cfg.Level),
		Logger: &zl,
	}.NewZerologHandler()

	logger := slog.New(handler)

	log.SetFlags(0)
	slog.SetDefault(logger)

	return logger
}

// OpenFile opens path for appending, creating it and its directory if needed.
// The TUI logs here so that log lines never land on the alternate screen.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
