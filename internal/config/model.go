package config

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of all loaded module manifests.
type Model struct {
	Modules map[string]*ModuleDefinition
}

// NewModel returns an empty Model.
func NewModel() *Model {
	return &Model{Modules: make(map[string]*ModuleDefinition)}
}

// PortKind tells an input port from an output port.
type PortKind int

const (
	InputPort PortKind = iota
	OutputPort
)

// String implements fmt.Stringer.
func (k PortKind) String() string {
	if k == OutputPort {
		return "output"
	}
	return "input"
}

// ModuleDefinition is the format-agnostic representation of a module manifest.
type ModuleDefinition struct {
	Name        string
	Description string
	Lifecycle   *Lifecycle
	Ports       map[string]*PortDefinition
	// Origin is the manifest file the definition was read from.
	Origin string
}

// Lifecycle maps a module's events to registered Go handler names.
type Lifecycle struct {
	OnRun string
}

// PortDefinition is one declared parameter of a module.
type PortDefinition struct {
	Name        string
	Kind        PortKind
	Type        cty.Type
	Directory   bool
	Description string
	Default     *cty.Value
	Optional    bool
}

// SortedPorts returns the module's ports ordered by kind (outputs first, as
// they are declared in a module signature) and then by name.
func (d *ModuleDefinition) SortedPorts() []*PortDefinition {
	ports := make([]*PortDefinition, 0, len(d.Ports))
	for _, p := range d.Ports {
		ports = append(ports, p)
	}
	sort.Slice(ports, func(i, j int) bool {
		if ports[i].Kind != ports[j].Kind {
			return ports[i].Kind == OutputPort
		}
		return ports[i].Name < ports[j].Name
	})
	return ports
}
