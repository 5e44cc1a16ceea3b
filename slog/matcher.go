// Package slog provides logging decorators for qalink service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/qalink"
)

// Ensure LoggingMatcher implements qalink.Matcher at compile time.
var _ qalink.Matcher = (*LoggingMatcher)(nil)

// LoggingMatcher wraps a Matcher with call logging. External matching calls
// are the slowest and flakiest part of a search, so every call is recorded
// with its duration and outcome.
type LoggingMatcher struct {
	next   qalink.Matcher
	logger *slog.Logger
}

// NewLoggingMatcher creates a new LoggingMatcher.
func NewLoggingMatcher(next qalink.Matcher, logger *slog.Logger) *LoggingMatcher {
	return &LoggingMatcher{next: next, logger: logger}
}

// Query delegates to the wrapped matcher and logs the call.
func (m *LoggingMatcher) Query(ctx context.Context, prompt string) (string, error) {
	begin := time.Now()
	reply, err := m.next.Query(ctx, prompt)
	if err != nil {
		m.logger.Warn("matcher query",
			"prompt_len", len(prompt),
			"duration", time.Since(begin),
			"err", err.Error(),
		)
		return "", err
	}
	m.logger.Debug("matcher query",
		"prompt_len", len(prompt),
		"reply_len", len(reply),
		"duration", time.Since(begin),
	)
	return reply, nil
}
