package mock

import (
	"context"

	"github.com/fwojciec/qalink"
)

var _ qalink.Matcher = (*Matcher)(nil)

// Matcher is a mock implementation of qalink.Matcher.
type Matcher struct {
	QueryFn func(ctx context.Context, prompt string) (string, error)
}

func (m *Matcher) Query(ctx context.Context, prompt string) (string, error) {
	return m.QueryFn(ctx, prompt)
}
