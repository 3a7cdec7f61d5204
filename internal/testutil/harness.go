// Package testutil provides an end-to-end harness that runs the host the
// way the binary does: CLI parsing, app construction and a single module run.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gridsample/internal/app"
	"github.com/vk/gridsample/internal/cli"
	"github.com/vk/gridsample/internal/hcl"
	"github.com/vk/gridsample/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// Harness owns a temporary root directory for one integration test.
type Harness struct {
	t    *testing.T
	Root string
}

// NewHarness creates a harness rooted in a fresh, symlink-resolved temp dir.
func NewHarness(t *testing.T) *Harness {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return &Harness{t: t, Root: root}
}

// Path joins rel onto the harness root.
func (h *Harness) Path(rel string) string {
	return filepath.Join(h.Root, rel)
}

// WriteFiles writes each relative path and content under the root.
func (h *Harness) WriteFiles(files map[string]string) {
	h.t.Helper()
	for name, content := range files {
		p := h.Path(name)
		require.NoError(h.t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(h.t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// Run parses args like the binary does and runs the app with the given
// modules (the core modules when none are given). Logging is forced to
// debug text so assertions can match on it.
func (h *Harness) Run(args []string, modules ...registry.Module) *HarnessResult {
	h.t.Helper()

	out := &bytes.Buffer{}
	logs := &SafeBuffer{}
	result := &HarnessResult{}
	defer func() {
		result.Output = out.String()
		result.LogOutput = logs.String()
		if os.Getenv("GRIDSAMPLE_TEST_LOGS") == "true" {
			h.t.Logf("--- Full Log Output for %s ---\n%s", h.t.Name(), result.LogOutput)
		}
	}()

	cfg, shouldExit, err := cli.Parse(args, out)
	if err != nil || shouldExit {
		result.Err = err
		return result
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		result.App = app.NewApp(out, logs, cfg, hcl.NewLoader(), modules...)
	}()
	if result.Err != nil {
		return result
	}

	result.Err = result.App.Run(context.Background())
	return result
}
