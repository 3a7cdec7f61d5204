package app

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/vk/gridsample/internal/console"
	"github.com/vk/gridsample/internal/ctxlog"
	"github.com/vk/gridsample/internal/executor"
	"github.com/vk/gridsample/internal/registry"
)

// Run prepares every registered module and then executes the configured one.
// Module errors are returned as they are.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	ctx = console.WithWriter(ctx, a.outW)
	a.logger.Debug("App.Run method started.", "module", a.config.Module)

	for _, mod := range a.registry.Modules() {
		p, ok := mod.(registry.Preparer)
		if !ok {
			continue
		}
		if err := p.Prepare(ctx, a.outW); err != nil {
			return fmt.Errorf("module preparation failed: %w", err)
		}
	}
	a.logger.Debug("Modules prepared.")

	exec := executor.New(a.registry, a.converter)
	if err := exec.Execute(ctx, a.config.Module, a.config.ModuleArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
