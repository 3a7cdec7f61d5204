// Package console carries the process's human-readable output stream
// through context.Context, next to the structured logger.
package console

import (
	"context"
	"io"
	"os"
)

type key struct{}

// WithWriter returns a new context whose console output goes to w.
func WithWriter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, key{}, w)
}

// FromContext returns the console writer, or os.Stdout if none was set.
func FromContext(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(key{}).(io.Writer); ok {
		return w
	}
	return os.Stdout
}
