package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fwojciec/qalink"
)

// DefaultMatcherTimeout bounds one external text-matching call. The remote
// service may take seconds; on expiry the call is treated as a fallback
// failure, never as a hung request.
const DefaultMatcherTimeout = 150 * time.Second

// DefaultCacheSize bounds the prompt-reply cache. The query space is
// unbounded, so the cache evicts least-recently-used entries beyond this
// capacity.
const DefaultCacheSize = 512

// Compile-time interface verification.
var _ Strategy = (*MatcherStrategy)(nil)

// MatcherStrategy resolves fallback queries with a single remote call: the
// question corpus and the query are sent to the text-matching service, and
// the reply must be exactly one existing question id. Replies are cached by
// exact prompt text in a bounded LRU.
type MatcherStrategy struct {
	matcher qalink.Matcher
	store   qalink.StoreService
	cache   *lru.Cache[uint64, string]
	timeout time.Duration
}

// MatcherOption configures a MatcherStrategy.
type MatcherOption func(*MatcherStrategy)

// WithMatcherTimeout sets the deadline for one remote call.
func WithMatcherTimeout(d time.Duration) MatcherOption {
	return func(s *MatcherStrategy) {
		s.timeout = d
	}
}

// NewMatcherStrategy creates a MatcherStrategy.
func NewMatcherStrategy(matcher qalink.Matcher, store qalink.StoreService, opts ...MatcherOption) *MatcherStrategy {
	s := &MatcherStrategy{
		matcher: matcher,
		store:   store,
		timeout: DefaultMatcherTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	// lru.New only fails for non-positive sizes.
	s.cache, _ = lru.New[uint64, string](DefaultCacheSize)
	return s
}

// Match sends one prompt to the matching service and validates the reply
// against the store. A reply that is not an existing numeric question id
// yields no matches, not an error.
func (s *MatcherStrategy) Match(ctx context.Context, query string) ([]Match, error) {
	questions, err := s.store.Questions(ctx)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, nil
	}

	prompt := buildPrompt(questions, query)
	key := xxhash.Sum64String(prompt)

	reply, ok := s.cache.Get(key)
	if !ok {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		reply, err = s.matcher.Query(callCtx, prompt)
		if err != nil {
			return nil, err
		}
		s.cache.Add(key, reply)
	}

	// The service reply may carry preamble lines; the id is on the last.
	lines := strings.Split(strings.TrimSpace(reply), "\n")
	id := strings.TrimSpace(lines[len(lines)-1])
	if !isDigits(id) {
		return nil, nil
	}
	if _, err := s.store.FindQuestionByID(ctx, id); err != nil {
		if qalink.ErrorCode(err) == qalink.ENOTFOUND {
			return nil, nil
		}
		return nil, err
	}
	return []Match{{QuestionID: id}}, nil
}

// buildPrompt embeds the candidate corpus so the service needs no other
// context. The reply contract is a single id line.
func buildPrompt(questions []*qalink.Question, query string) string {
	var sb strings.Builder
	sb.WriteString("Pick the stored question closest in meaning to the query.\n")
	sb.WriteString("Reply with the question id only, on a single line, nothing else.\n\n")
	for _, q := range questions {
		fmt.Fprintf(&sb, "%s: %s\n", q.ID, q.Text)
	}
	fmt.Fprintf(&sb, "\nQuery: %s", query)
	return sb.String()
}
