package qalink

import (
	"context"
	"time"
)

// SearchRecord describes one resolved search query.
type SearchRecord struct {
	ID        string        `json:"id"`
	Query     string        `json:"query"`
	Stage     string        `json:"stage"`
	Results   int           `json:"results"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"createdAt"`
}

// SearchStats aggregates the recorded search history.
type SearchStats struct {
	Total       int            `json:"total"`
	ByStage     map[string]int `json:"byStage"`
	AvgDuration time.Duration  `json:"avgDuration"`
}

// SearchLogService records resolved searches for later inspection.
type SearchLogService interface {
	// RecordSearch stores one search record.
	RecordSearch(ctx context.Context, rec *SearchRecord) error

	// SearchStats aggregates all recorded searches.
	SearchStats(ctx context.Context) (*SearchStats, error)
}
