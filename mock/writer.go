package mock

import (
	"context"

	"github.com/fwojciec/clipprune"
)

var _ clipprune.ClipWriter = (*ClipWriter)(nil)

// ClipWriter is a mock implementation of clipprune.ClipWriter.
type ClipWriter struct {
	WriteClipFn func(ctx context.Context, clip *clipprune.Clip) error
}

func (w *ClipWriter) WriteClip(ctx context.Context, clip *clipprune.Clip) error {
	return w.WriteClipFn(ctx, clip)
}
