package mock

import (
	"context"

	"github.com/fwojciec/qalink"
)

var _ qalink.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of qalink.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}
