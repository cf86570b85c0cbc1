package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/ensurenodefaults/internal/report"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string
	Exceptions   []string
	Format       report.Format

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}

	if cfg.Format == "" {
		cfg.Format = report.FormatText
	}
	if _, err := report.ParseFormat(string(cfg.Format)); err != nil {
		return nil, err
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format '%s': must be 'text' or 'json'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "warn"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level '%s': must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	cfg.Exceptions = append([]string(nil), cfg.Exceptions...)
	return &cfg, nil
}
