package executor

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/vk/gridsample/internal/config"
	"github.com/vk/gridsample/internal/ctxlog"
	"github.com/vk/gridsample/internal/registry"
)

// UsageError reports invocation arguments that do not fit a module's
// declared ports.
type UsageError struct {
	Module string
	Err    error
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return fmt.Sprintf("module '%s': %v", e.Module, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *UsageError) Unwrap() error {
	return e.Err
}

// Executor invokes modules held by a registry.
type Executor struct {
	registry  *registry.Registry
	converter config.Converter
}

// New creates an Executor.
func New(reg *registry.Registry, converter config.Converter) *Executor {
	return &Executor{registry: reg, converter: converter}
}

// Execute parses args against the ports of moduleName and runs its handler
// once. Handler errors are returned unchanged.
func (e *Executor) Execute(ctx context.Context, moduleName string, args []string) error {
	ctx, logger := ctxlog.With(ctx, "module", moduleName)

	def, ok := e.registry.Definition(moduleName)
	if !ok {
		return &UsageError{Module: moduleName, Err: fmt.Errorf("unknown module, available: %v", e.registry.ModuleNames())}
	}

	values, err := parsePortArgs(ctx, def, args)
	if err != nil {
		return err
	}

	handlerName := def.Lifecycle.OnRun
	handler, ok := e.registry.HandlerRegistry[handlerName]
	if !ok {
		return fmt.Errorf("handler '%s' not registered", handlerName)
	}

	var input any
	if handler.NewInput != nil {
		input = handler.NewInput()
	}
	if input != nil {
		if err := e.converter.DecodeArgs(ctx, input, values, def.Ports); err != nil {
			return &UsageError{Module: moduleName, Err: err}
		}
	}
	logger.Debug("Module input decoded.", "data", input)

	logger.Info("▶️ Starting module", "handler", handlerName)
	output, err := call(ctx, handler, input)
	if err != nil {
		return err
	}
	logger.Debug("Module output.", "data", output)
	logger.Info("✅ Finished module")
	return nil
}

// call invokes the handler through reflection, passing a fresh deps struct.
func call(ctx context.Context, handler *registry.RegisteredRunner, input any) (any, error) {
	fn := reflect.ValueOf(handler.Fn)
	fnType := fn.Type()

	var deps reflect.Value
	if handler.NewDeps != nil {
		deps = reflect.ValueOf(handler.NewDeps())
	} else {
		deps = reflect.Zero(fnType.In(1))
	}

	var in reflect.Value
	if input == nil {
		in = reflect.Zero(fnType.In(2))
	} else {
		in = reflect.ValueOf(input)
	}

	results := fn.Call([]reflect.Value{reflect.ValueOf(ctx), deps, in})
	if errVal := results[1].Interface(); errVal != nil {
		err, ok := errVal.(error)
		if !ok {
			return nil, errors.New("handler returned a non-error second value")
		}
		return nil, err
	}
	return results[0].Interface(), nil
}
