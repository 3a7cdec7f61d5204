package gdal_sample

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"reflect"

	"github.com/vk/gridsample/internal/console"
	"github.com/vk/gridsample/internal/ctxlog"
	"github.com/vk/gridsample/internal/dataframe"
	"github.com/vk/gridsample/internal/fsutil"
	"github.com/vk/gridsample/internal/geoinfo"
	"github.com/vk/gridsample/internal/registry"
)

//go:embed module.hcl
var manifest []byte

// PreviewRows is how many rows of the input table are printed.
const PreviewRows = 10

// Module implements the registry.Module interface for this package.
type Module struct {
	// Prober reports the GDAL version at startup. Nil means the GDAL
	// command-line tools on PATH.
	Prober geoinfo.Prober
}

// Input defines the ports of the gdal_sample module.
type Input struct {
	OutputDir1 string `bggo:"output_dir1"`
	OutputDir2 string `bggo:"output_dir2"`
	InputDir1  string `bggo:"input_dir1"`
	InputDir2  string `bggo:"input_dir2"`
}

// Deps is an empty struct because this module does not use any resources.
type Deps struct{}

// Prepare prints the GDAL version number before any module runs. A failed
// probe stops the process.
func (m *Module) Prepare(ctx context.Context, out io.Writer) error {
	prober := m.Prober
	if prober == nil {
		prober = geoinfo.NewGDALProber()
	}
	num, err := prober.VersionNum(ctx)
	if err != nil {
		return fmt.Errorf("gdal_sample: %w", err)
	}
	_, err = fmt.Fprintf(out, "gdal version number is %d.\n", num)
	return err
}

// OnRunGdalSample is the handler for the module's on_run lifecycle event.
func OnRunGdalSample(ctx context.Context, deps *Deps, input *Input) (any, error) {
	out := console.FromContext(ctx)
	logger := ctxlog.FromContext(ctx)

	fmt.Fprintln(out, "module definition")
	for _, p := range []struct{ name, path string }{
		{"input_dir1", input.InputDir1},
		{"input_dir2", input.InputDir2},
	} {
		resolved, err := fsutil.Resolve(p.path)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "%s: %s\n", p.name, resolved)
	}

	dfd, err := dataframe.Load(ctx, input.InputDir1)
	if err != nil {
		return nil, err
	}
	defer dfd.Release()
	logger.Debug("Previewing data frame.", "rows", dfd.NumRows(), "preview_rows", PreviewRows)

	if _, err := dfd.Head(PreviewRows).WriteTo(out); err != nil {
		return nil, err
	}
	return nil, nil
}

// Register registers the manifest and handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterManifest("gdal_sample/module.hcl", manifest)
	r.RegisterRunner("OnRunGdalSample", &registry.RegisteredRunner{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		NewDeps:   func() any { return new(Deps) },
		Fn:        OnRunGdalSample,
	})
}
