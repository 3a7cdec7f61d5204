package registry

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/vk/gridsample/internal/config"
)

// RegisteredRunner holds the compiled Go parts of a module's run handler.
//
// Fn must have the shape
//
//	func(ctx context.Context, deps *D, input *I) (O, error)
type RegisteredRunner struct {
	NewInput  func() any
	InputType reflect.Type
	NewDeps   func() any
	Fn        any
}

// RegisterRunner registers a Go function under a handler name.
func (r *Registry) RegisterRunner(name string, handler *RegisteredRunner) {
	if _, exists := r.HandlerRegistry[name]; exists {
		panic(fmt.Sprintf("runner handler with name '%s' already registered", name))
	}
	if fn := reflect.TypeOf(handler.Fn); fn == nil || fn.Kind() != reflect.Func || fn.NumIn() != 3 || fn.NumOut() != 2 {
		panic(fmt.Sprintf("runner handler '%s' must be func(ctx, deps, input) (output, error)", name))
	}
	slog.Debug("Registering runner handler.", "name", name)
	r.HandlerRegistry[name] = handler
}

// RegisterManifest adds a manifest document, usually embedded in the module
// package, to the set loaded at startup.
func (r *Registry) RegisterManifest(filename string, data []byte) {
	slog.Debug("Registering module manifest.", "file", filename)
	r.manifests = append(r.manifests, config.Source{Filename: filename, Bytes: data})
}
