package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/gridsample/internal/app"
	"github.com/vk/gridsample/internal/cli"
	"github.com/vk/gridsample/internal/executor"
	"github.com/vk/gridsample/internal/hcl"
)

// main is the entrypoint for the gridsample host.
func main() {
	// Use a minimal logger until the app configures its own.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps usage problems to 2 and every other failure to 1.
func exitCode(err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var usageErr *executor.UsageError
	if errors.As(err, &usageErr) {
		return 2
	}
	return 1
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// NewApp panics on manifest/code mismatches; turn that into an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	gridApp := app.NewApp(outW, errW, appConfig, hcl.NewLoader())
	return gridApp.Run(context.Background())
}
