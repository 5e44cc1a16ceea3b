// Package search implements the staged query resolver: exact-id match,
// case-insensitive substring scan, then a pluggable semantic fallback
// strategy. The first stage that yields results short-circuits the rest.
package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/qalink"
)

// Match is one fallback candidate: a question id, optionally with a
// similarity score when the strategy computes one.
type Match struct {
	QuestionID string
	Score      *float64
}

// Strategy is the last-resort matching stage, invoked only when the exact-id
// and substring stages yield nothing. Exactly one strategy is configured per
// deployment.
type Strategy interface {
	Match(ctx context.Context, query string) ([]Match, error)
}

// Resolver resolves free-text queries to matching questions.
type Resolver struct {
	store    qalink.StoreService
	strategy Strategy
	logger   *slog.Logger
}

// NewResolver creates a Resolver. strategy may be nil, in which case the
// fallback stage is skipped and unmatched queries resolve to an empty list.
func NewResolver(store qalink.StoreService, strategy Strategy, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{store: store, strategy: strategy, logger: logger}
}

// Resolve runs the staged pipeline for one query and returns the matched
// questions enriched with their answers, along with the stage that produced
// them. Fallback failures are logged and treated as no match; they never
// surface to the caller.
func (r *Resolver) Resolve(ctx context.Context, query string) ([]qalink.SearchResult, string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []qalink.SearchResult{}, qalink.StageNone, nil
	}

	// Exact-id shortcut.
	if isDigits(q) {
		question, err := r.store.FindQuestionByID(ctx, q)
		if err == nil {
			result, err := r.enrich(ctx, question, nil)
			if err != nil {
				return nil, "", err
			}
			return []qalink.SearchResult{result}, qalink.StageID, nil
		}
		if qalink.ErrorCode(err) != qalink.ENOTFOUND {
			return nil, "", err
		}
	}

	// Substring scan over question texts, in store iteration order.
	questions, err := r.store.Questions(ctx)
	if err != nil {
		return nil, "", err
	}
	qlow := strings.ToLower(q)
	results := []qalink.SearchResult{}
	for _, question := range questions {
		if !strings.Contains(strings.ToLower(question.Text), qlow) {
			continue
		}
		result, err := r.enrich(ctx, question, nil)
		if err != nil {
			return nil, "", err
		}
		results = append(results, result)
	}
	if len(results) > 0 {
		return results, qalink.StageSubstring, nil
	}

	if r.strategy == nil {
		return []qalink.SearchResult{}, qalink.StageNone, nil
	}

	matches, err := r.strategy.Match(ctx, q)
	if err != nil {
		r.logger.Warn("fallback match failed", "query", q, "err", err)
		return []qalink.SearchResult{}, qalink.StageNone, nil
	}
	for _, m := range matches {
		question, err := r.store.FindQuestionByID(ctx, m.QuestionID)
		if err != nil {
			// The strategy may hold stale ids; skip rather than fail.
			continue
		}
		result, err := r.enrich(ctx, question, m.Score)
		if err != nil {
			return nil, "", err
		}
		results = append(results, result)
	}
	if len(results) > 0 {
		return results, qalink.StageFallback, nil
	}
	return []qalink.SearchResult{}, qalink.StageNone, nil
}

func (r *Resolver) enrich(ctx context.Context, q *qalink.Question, score *float64) (qalink.SearchResult, error) {
	answers, err := r.store.AnswersForQuestion(ctx, q.ID)
	if err != nil {
		return qalink.SearchResult{}, err
	}
	return qalink.SearchResult{
		ID:              q.ID,
		Text:            q.Text,
		Description:     q.Description,
		Answers:         answers,
		SimilarityScore: score,
	}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
