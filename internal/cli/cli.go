package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/gridsample/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
//
// Everything after the module name belongs to the module and is not
// interpreted here.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gridsample", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridsample - runs a single registered pipeline module.

Usage:
  gridsample [options] MODULE [--port value ...]

Arguments:
  MODULE
    Name of the module to run, e.g. gdal_sample.
    Run 'gridsample MODULE -h' to list its ports.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a TOML settings file.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	modulesPathFlag := flagSet.String("modules-path", "", "Path to a directory of extra .hcl module manifests.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No module provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	settings := Settings{
		LogFormat:   *logFormatFlag,
		LogLevel:    *logLevelFlag,
		ModulesPath: *modulesPathFlag,
	}
	if *configFlag != "" {
		fileSettings, err := LoadSettings(*configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		set := make(map[string]bool)
		flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })
		settings = settings.merge(fileSettings, set)
		slog.Debug("Settings file applied.", "path", *configFlag)
	}

	logFormat := strings.ToLower(settings.LogFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(settings.LogLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ModulesPath: settings.ModulesPath,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		Module:      flagSet.Arg(0),
		ModuleArgs:  flagSet.Args()[1:],
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "module", config.Module)
	return config, false, nil
}
