// Package ratelimit wraps a qalink.Matcher with a token-bucket rate limit
// so fallback searches cannot stampede the external text-matching service.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/fwojciec/qalink"
)

// Ensure Matcher implements qalink.Matcher at compile time.
var _ qalink.Matcher = (*Matcher)(nil)

// Matcher delays queries to respect a requests-per-second limit with a
// burst of 1 (no bursting allowed).
type Matcher struct {
	next    qalink.Matcher
	limiter *rate.Limiter
}

// NewMatcher creates a rate-limited Matcher with the given requests per
// second limit.
func NewMatcher(next qalink.Matcher, rps float64) *Matcher {
	return &Matcher{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Query blocks until the rate limit allows a call, then delegates. Returns
// an error if the context is canceled before the wait completes.
func (m *Matcher) Query(ctx context.Context, prompt string) (string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return m.next.Query(ctx, prompt)
}
