package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vk/gridsample/internal/ctxlog"
	"github.com/vk/gridsample/internal/hcl"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidateRegistry performs a strict parity check between manifests and Go
// code: every module must name a registered handler, and the handler's input
// struct must declare exactly the manifest's ports with compatible types.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	names := make([]string, 0, len(r.DefinitionRegistry))
	for name := range r.DefinitionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, moduleName := range names {
		def := r.DefinitionRegistry[moduleName]
		if def.Lifecycle == nil || def.Lifecycle.OnRun == "" {
			errs = append(errs, fmt.Sprintf("module '%s': manifest has no lifecycle.on_run handler", moduleName))
			continue
		}
		handler, ok := r.HandlerRegistry[def.Lifecycle.OnRun]
		if !ok {
			errs = append(errs, fmt.Sprintf("module '%s': handler '%s' is not registered", moduleName, def.Lifecycle.OnRun))
			continue
		}

		if handler.InputType == nil || handler.InputType.Kind() != reflect.Struct {
			if len(def.Ports) > 0 {
				errs = append(errs, fmt.Sprintf("module '%s': manifest declares ports, but Go handler has no input struct", moduleName))
			}
			continue
		}

		goPorts := make(map[string]reflect.StructField)
		for i := 0; i < handler.InputType.NumField(); i++ {
			field := handler.InputType.Field(i)
			if name := hcl.PortName(field); name != "" {
				goPorts[name] = field
			}
		}

		goNames := make([]string, 0, len(goPorts))
		for name := range goPorts {
			goNames = append(goNames, name)
		}
		sort.Strings(goNames)
		for _, name := range goNames {
			if _, ok := def.Ports[name]; !ok {
				errs = append(errs, fmt.Sprintf("module '%s': Go struct has field for port '%s' which is not declared in manifest", moduleName, name))
			}
		}

		portNames := make([]string, 0, len(def.Ports))
		for name := range def.Ports {
			portNames = append(portNames, name)
		}
		sort.Strings(portNames)

		for _, name := range portNames {
			port := def.Ports[name]
			goField, ok := goPorts[name]
			if !ok {
				errs = append(errs, fmt.Sprintf("module '%s': manifest declares port '%s' which is not found in Go struct", moduleName, name))
				continue
			}

			goType, err := gocty.ImpliedType(reflect.Zero(goField.Type).Interface())
			if err != nil {
				errs = append(errs, fmt.Sprintf("module '%s', port '%s': could not imply cty type from Go field type %s: %v", moduleName, name, goField.Type, err))
				continue
			}
			if !port.Type.Equals(goType) {
				errs = append(errs, fmt.Sprintf("module '%s', port '%s': type mismatch. Manifest requires '%s' but Go struct field '%s' provides '%s'",
					moduleName, name, port.Type.FriendlyName(), goField.Name, goType.FriendlyName()))
			}
		}
		logger.Debug("Validated module contract.", "module", moduleName, "ports", len(def.Ports))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
