package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vk/gridsample/internal/config"
	"github.com/vk/gridsample/internal/ctxlog"
	"github.com/vk/gridsample/internal/hcl"
	"github.com/vk/gridsample/internal/registry"
)

// App encapsulates the host's dependencies, configuration and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	runID     string
	registry  *registry.Registry
	config    *Config
	converter config.Converter
}

// NewApp builds a fully initialized App: logger, registry and the manifests
// of every module. With no modules given, the compiled-in core modules are
// used. Console output goes to outW and logs go to logW.
//
// Manifest or registry errors mean the code and its manifests disagree, so
// NewApp panics; the entrypoint recovers and reports them.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", runID)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules()
	}
	for _, mod := range modules {
		reg.Add(mod)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	sources := append([]config.Source(nil), reg.Manifests()...)
	if cfg.ModulesPath != "" {
		extra, err := hcl.ReadPaths(ctx, cfg.ModulesPath)
		if err != nil {
			panic(fmt.Errorf("failed to read module manifests: %w", err))
		}
		sources = append(sources, extra...)
	}

	model, converter, err := loader.Load(ctx, sources...)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	reg.PopulateDefinitionsFromModel(model)
	logger.Debug("Registry definitions populated from manifests.", "modules", reg.ModuleNames())

	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:      outW,
		logger:    logger,
		runID:     runID,
		registry:  reg,
		config:    cfg,
		converter: converter,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// RunID identifies this process's run in the logs.
func (a *App) RunID() string {
	return a.runID
}
