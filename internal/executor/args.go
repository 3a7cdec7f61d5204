package executor

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/gridsample/internal/config"
	"github.com/vk/gridsample/internal/console"
	"github.com/vk/gridsample/internal/ctxlog"
	"github.com/vk/gridsample/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// parsePortArgs reads `--port value` / `--port=value` pairs for every port
// declared by def. Only ports present on the command line end up in the
// returned map, so manifest defaults still apply to the rest.
func parsePortArgs(ctx context.Context, def *config.ModuleDefinition, args []string) (map[string]cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	out := console.FromContext(ctx)

	flagSet := flag.NewFlagSet(def.Name, flag.ContinueOnError)
	flagSet.SetOutput(out)
	flagSet.Usage = func() { WriteUsage(out, def) }

	raw := make(map[string]*string, len(def.Ports))
	for _, port := range def.SortedPorts() {
		raw[port.Name] = flagSet.String(port.Name, "", port.Description)
	}

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, &UsageError{Module: def.Name, Err: err}
	}
	if flagSet.NArg() > 0 {
		return nil, &UsageError{Module: def.Name, Err: fmt.Errorf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))}
	}

	values := make(map[string]cty.Value)
	flagSet.Visit(func(f *flag.Flag) {
		values[f.Name] = cty.StringVal(*raw[f.Name])
		port := def.Ports[f.Name]
		if port.Directory && !fsutil.IsDir(*raw[f.Name]) {
			logger.Debug("Directory port does not point at an existing directory.", "port", f.Name, "kind", port.Kind.String(), "path", *raw[f.Name])
		}
	})
	logger.Debug("Parsed module arguments.", "provided", len(values), "declared", len(def.Ports))
	return values, nil
}

// WriteUsage prints the module's ports the way `-h` shows them.
func WriteUsage(w io.Writer, def *config.ModuleDefinition) {
	fmt.Fprintf(w, "\nModule: %s\n", def.Name)
	if def.Description != "" {
		fmt.Fprintf(w, "  %s\n", def.Description)
	}
	fmt.Fprintln(w, "\nPorts:")
	for _, port := range def.SortedPorts() {
		kind := port.Kind.String()
		if port.Directory {
			kind += " directory"
		} else {
			kind += " " + port.Type.FriendlyName()
		}
		req := "required"
		if port.Optional {
			req = "optional"
		}
		fmt.Fprintf(w, "  --%s (%s, %s)\n", port.Name, kind, req)
		if port.Description != "" {
			fmt.Fprintf(w, "      %s\n", port.Description)
		}
	}
}
