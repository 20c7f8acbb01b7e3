// Package logger provides a configured zerolog instance.
package logger

import (
	"io"
	"os"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/rs/zerolog"
)

// ServiceName is attached to every log line.
const ServiceName = "fitgenius-hub"

// NewLogger creates a new configured instance of zerolog.Logger.
// It reads the level and format from the config and adds default fields like service name and caller.
func NewLogger(cfg *config.Config) (*zerolog.Logger, error) {
	var out io.Writer = os.Stderr
	if cfg.Logger.Format != "json" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	logger := New(out, cfg.Logger.Level)
	return &logger, nil
}

// New builds a logger writing to out. Unknown levels fall back to info.
func New(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).With().
		Timestamp().
		Str("service", ServiceName).
		Caller().
		Logger().
		Level(lvl)
}
