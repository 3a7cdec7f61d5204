package error_handling_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gridsample/internal/registry"
	"github.com/vk/gridsample/internal/testutil"
)

type mismatchInput struct {
	Dir   string `bggo:"dir"`
	Count string `bggo:"count"`
}

type mismatchModule struct{}

func (m *mismatchModule) Register(r *registry.Registry) {
	r.RegisterManifest("mismatch.hcl", []byte(`
module "mismatch" {
  lifecycle {
    on_run = "OnRunMismatch"
  }
  input "dir" { type = directory }
  input "count" { type = number }
}
`))
	r.RegisterRunner("OnRunMismatch", &registry.RegisteredRunner{
		NewInput:  func() any { return new(mismatchInput) },
		InputType: reflect.TypeOf(mismatchInput{}),
		Fn: func(ctx context.Context, deps *struct{}, input *mismatchInput) (any, error) {
			return nil, nil
		},
	})
}

func TestParityCheck_TypeMismatchStopsStartup(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h := testutil.NewHarness(t)

	// --- Act ---
	result := h.Run([]string{"mismatch", "--dir", h.Root, "--count", "1"}, &mismatchModule{})

	// --- Assert ---
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "application startup panicked")
	require.Contains(t, result.Err.Error(), "module 'mismatch', port 'count': type mismatch")
	require.Nil(t, result.App)
}
