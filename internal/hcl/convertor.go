package hcl

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/gridsample/internal/config"
	"github.com/vk/gridsample/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// TagName is the struct tag that binds an input struct field to a port.
const TagName = "bggo"

// Converter is the HCL-specific implementation of the config.Converter interface.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeArgs populates the fields of inputStruct tagged with `bggo:"<port>"`.
// Provided arguments win over manifest defaults; a required port with
// neither is an error.
func (c *Converter) DecodeArgs(
	ctx context.Context,
	inputStruct any,
	args map[string]cty.Value,
	ports map[string]*config.PortDefinition,
) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting argument decoding.", "arg_count", len(args))

	structVal := reflect.ValueOf(inputStruct)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("inputStruct must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		name := PortName(field)
		if name == "" {
			continue
		}
		port, ok := ports[name]
		if !ok {
			continue
		}

		target := fieldVal.Addr().Interface()
		if val, provided := args[name]; provided {
			if err := c.decode(ctx, val, port.Type, target); err != nil {
				return fmt.Errorf("failed to decode argument '%s': %w", name, err)
			}
			continue
		}

		if port.Default != nil {
			if err := c.decode(ctx, *port.Default, port.Type, target); err != nil {
				return fmt.Errorf("failed to apply default for '%s': %w", name, err)
			}
			continue
		}
		if !port.Optional {
			return fmt.Errorf("missing required argument %q", name)
		}
	}

	logger.Debug("Finished argument decoding successfully.")
	return nil
}

// decode converts val to the port type and stores it in the Go pointer.
func (c *Converter) decode(ctx context.Context, val cty.Value, want cty.Type, goVal any) error {
	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
	}
	if !val.Type().Equals(converted.Type()) {
		ctxlog.FromContext(ctx).Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", converted.Type().FriendlyName(),
		)
	}
	return gocty.FromCtyValue(converted, goVal)
}

// PortName returns the port a struct field is bound to, or "" if the field
// carries no binding.
func PortName(field reflect.StructField) string {
	if !field.IsExported() {
		return ""
	}
	name := strings.Split(field.Tag.Get(TagName), ",")[0]
	if name == "-" {
		return ""
	}
	return name
}
