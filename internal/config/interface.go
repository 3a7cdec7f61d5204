package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Source is a single manifest document, either embedded in a module package
// or read from disk.
type Source struct {
	Filename string
	Bytes    []byte
}

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load parses the given manifest sources and translates them into the
	// format-agnostic model, returning a matching Converter.
	Load(ctx context.Context, sources ...Source) (*Model, Converter, error)
}

// Converter binds raw invocation arguments to the Go types used by modules.
type Converter interface {
	// DecodeArgs populates inputStruct from the given argument values,
	// applying manifest defaults and rejecting missing required ports.
	DecodeArgs(
		ctx context.Context,
		inputStruct any,
		args map[string]cty.Value,
		ports map[string]*PortDefinition,
	) error
}
