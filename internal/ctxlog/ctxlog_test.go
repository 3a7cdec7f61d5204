package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext_ReturnsEmbeddedLogger(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	ctx := WithLogger(context.Background(), logger)

	// --- Act ---
	got := FromContext(ctx)

	// --- Assert ---
	require.Same(t, logger, got)
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	require.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWith_AddsAttributes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	buf := &bytes.Buffer{}
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(buf, nil)))

	// --- Act ---
	ctx, logger := With(ctx, "module", "gdal_sample")
	logger.Info("hello")
	FromContext(ctx).Info("again")

	// --- Assert ---
	require.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("module=gdal_sample")))
}
