package registry

import (
	"context"
	"io"
	"sort"

	"github.com/vk/gridsample/internal/config"
)

// Module is the interface that every compiled-in module implements.
type Module interface {
	Register(r *Registry)
}

// Preparer is implemented by modules that have process-start work to do,
// such as probing a native library, before any module is executed. Output
// goes to the console writer.
type Preparer interface {
	Prepare(ctx context.Context, out io.Writer) error
}

// Registry holds the registered handlers, manifests and definitions for a
// single application instance.
type Registry struct {
	HandlerRegistry    map[string]*RegisteredRunner
	DefinitionRegistry map[string]*config.ModuleDefinition

	manifests []config.Source
	modules   []Module
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		HandlerRegistry:    make(map[string]*RegisteredRunner),
		DefinitionRegistry: make(map[string]*config.ModuleDefinition),
	}
}

// Add registers a module and remembers it for the prepare phase.
func (r *Registry) Add(m Module) {
	m.Register(r)
	r.modules = append(r.modules, m)
}

// Modules returns the modules added through Add, in order.
func (r *Registry) Modules() []Module {
	return r.modules
}

// Manifests returns the manifest sources contributed by registered modules.
func (r *Registry) Manifests() []config.Source {
	return r.manifests
}

// PopulateDefinitionsFromModel copies the loaded module definitions from the
// config model into the registry.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for key, val := range model.Modules {
		r.DefinitionRegistry[key] = val
	}
}

// Definition looks up a module definition by its symbolic name.
func (r *Registry) Definition(name string) (*config.ModuleDefinition, bool) {
	def, ok := r.DefinitionRegistry[name]
	return def, ok
}

// ModuleNames returns the sorted names of all defined modules.
func (r *Registry) ModuleNames() []string {
	names := make([]string, 0, len(r.DefinitionRegistry))
	for name := range r.DefinitionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
