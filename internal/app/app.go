package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/ensurenodefaults/internal/manifest"
)

// Loader produces the dependency declarations of the manifest at a path.
type Loader interface {
	Load(ctx context.Context, manifestPath string) ([]manifest.Declaration, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config
	loader Loader
}

// NewApp is the constructor for the main application. Passing reports go to
// outW; failing reports and logs go to errW.
func NewApp(outW, errW io.Writer, config *Config, loader Loader) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, errW)
	logger.Debug("Logger configured successfully.", "level", config.LogLevel, "format", config.LogFormat)

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		config: config,
		loader: loader,
	}
}
