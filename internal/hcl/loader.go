package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/gridsample/internal/config"
	"github.com/vk/gridsample/internal/ctxlog"
	"github.com/vk/gridsample/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every source and merges the modules it declares into a single
// model. A module declared again in a later source replaces the earlier one.
func (l *Loader) Load(ctx context.Context, sources ...config.Source) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "source_count", len(sources))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, src := range sources {
		hclFile, diags := parser.ParseHCL(src.Bytes, src.Filename)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", src.Filename, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", src.Filename, diags)
		}

		for _, block := range root.Modules {
			def, err := translateModule(ctx, block)
			if err != nil {
				return nil, nil, fmt.Errorf("in %s: %w", src.Filename, err)
			}
			def.Origin = src.Filename
			if prev, ok := model.Modules[def.Name]; ok {
				logger.Debug("Module manifest overridden.", "module", def.Name, "previous", prev.Origin, "current", def.Origin)
			}
			model.Modules[def.Name] = def
		}
	}

	logger.Debug("HCL loading complete.", "modules", len(model.Modules))
	return model, NewConverter(), nil
}

// ReadPaths collects every .hcl file under the given paths as manifest
// sources. Paths that do not exist are skipped.
func ReadPaths(ctx context.Context, paths ...string) ([]config.Source, error) {
	logger := ctxlog.FromContext(ctx)
	var sources []config.Source
	seen := make(map[string]struct{})

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				logger.Debug("Manifest path does not exist, skipping.", "path", path)
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if _, ok := seen[file]; ok {
				continue
			}
			seen[file] = struct{}{}

			data, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("failed to read manifest %s: %w", file, err)
			}
			sources = append(sources, config.Source{Filename: file, Bytes: data})
		}
	}
	return sources, nil
}
