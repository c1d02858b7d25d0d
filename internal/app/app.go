package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/psmgen/internal/ctxlog"
	"github.com/specialistvlad/psmgen/internal/firmware"
	"github.com/specialistvlad/psmgen/internal/hclmodel"
	"github.com/specialistvlad/psmgen/internal/index"
	"github.com/specialistvlad/psmgen/internal/metrics"
	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/xmlmodel"
	"github.com/specialistvlad/psmgen/internal/yamlmodel"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	metrics *metrics.Recorder
}

// New is the constructor for the main application. Summaries go to outW and
// logs to logW, each App with its own isolated logger and metrics registry.
func New(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		metrics: metrics.NewRecorder(cfg.HealthcheckPort > 0),
	}
}

// Metrics returns the application's metrics recorder.
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// LoaderFor picks the model loader matching the file extension of path.
func LoaderFor(path string) (model.Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xml":
		return xmlmodel.NewLoader(), nil
	case ".hcl":
		return hclmodel.NewLoader(), nil
	case ".yaml", ".yml":
		return yamlmodel.NewLoader(), nil
	}
	return nil, fmt.Errorf("unsupported model format %q: expected .xml, .hcl, .yaml or .yml", ext)
}

// Load reads the configured model.
func (a *App) Load(ctx context.Context) (*model.System, error) {
	ctx = a.withLogger(ctx)
	loader, err := LoaderFor(a.config.ModelPath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Loading model.", "path", a.config.ModelPath)
	sys, err := loader.Load(ctx, a.config.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	a.logger.Debug("Model loaded.", "system", sys.ID, "components", len(sys.Components))
	return sys, nil
}

// Assemble loads, indexes and renders the model without writing anything.
func (a *App) Assemble(ctx context.Context) ([]*firmware.Unit, error) {
	ctx = a.withLogger(ctx)
	sys, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := index.Build(ctx, sys)
	if err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}
	units, err := firmware.AssembleAll(ctx, idx, a.config.Firmware)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	return units, nil
}
