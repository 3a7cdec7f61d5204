package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/gridsample/internal/config"
	"github.com/vk/gridsample/internal/ctxlog"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateModule converts a decoded module block into the agnostic model.
func translateModule(ctx context.Context, b *moduleBlock) (*config.ModuleDefinition, error) {
	def := &config.ModuleDefinition{
		Name:        b.Name,
		Description: b.Description,
		Ports:       make(map[string]*config.PortDefinition),
	}
	if b.Lifecycle != nil {
		def.Lifecycle = &config.Lifecycle{OnRun: b.Lifecycle.OnRun}
	}

	add := func(p *portBlock, kind config.PortKind) error {
		if _, dup := def.Ports[p.Name]; dup {
			return fmt.Errorf("module '%s' declares port '%s' more than once", b.Name, p.Name)
		}
		port, err := translatePort(ctx, p, kind, b.Name)
		if err != nil {
			return err
		}
		def.Ports[p.Name] = port
		return nil
	}
	for _, p := range b.Outputs {
		if err := add(p, config.OutputPort); err != nil {
			return nil, err
		}
	}
	for _, p := range b.Inputs {
		if err := add(p, config.InputPort); err != nil {
			return nil, err
		}
	}
	return def, nil
}

// translatePort processes a single port block, handling its type and default.
func translatePort(ctx context.Context, p *portBlock, kind config.PortKind, moduleName string) (*config.PortDefinition, error) {
	parsed, err := typeExprToPortType(ctx, p.Type)
	if err != nil {
		return nil, fmt.Errorf("in module '%s', %s '%s': %w", moduleName, kind, p.Name, err)
	}

	port := &config.PortDefinition{
		Name:        p.Name,
		Kind:        kind,
		Type:        parsed.ty,
		Directory:   parsed.directory,
		Description: p.Description,
		Optional:    p.Optional,
	}

	if isExprDefined(ctx, p.Default, "default") {
		val, diags := p.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid default value for %s '%s' in module '%s': %w", kind, p.Name, moduleName, diags)
		}
		if !val.IsNull() {
			converted, err := convert.Convert(val, port.Type)
			if err != nil {
				return nil, fmt.Errorf("default value for %s '%s' in module '%s' is not a %s: %w", kind, p.Name, moduleName, port.Type.FriendlyName(), err)
			}
			port.Default = &converted
			port.Optional = true
		}
	}
	return port, nil
}

// isExprDefined reports whether an optional attribute was actually written in
// the source. gohcl fills omitted expression fields with a zero-width
// placeholder, so a nil check alone is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checked HCL attribute presence.", "attribute", attrName, "hcl_range", r.String(), "is_defined", defined)
	return defined
}
