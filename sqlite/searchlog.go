package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/qalink"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ qalink.SearchLogService = (*SearchLogService)(nil)

// SearchLogService implements qalink.SearchLogService using SQLite.
type SearchLogService struct {
	db *DB
}

// NewSearchLogService creates a new SearchLogService.
func NewSearchLogService(db *DB) *SearchLogService {
	return &SearchLogService{db: db}
}

// RecordSearch stores one search record.
func (s *SearchLogService) RecordSearch(ctx context.Context, rec *qalink.SearchRecord) error {
	if rec.Stage == "" {
		return qalink.Errorf(qalink.EINVALID, "search record stage required")
	}

	rec.ID = uuid.New().String()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (id, query, stage, results, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Query, rec.Stage, rec.Results, rec.Duration.Milliseconds(),
		rec.CreatedAt.Format(time.RFC3339))

	return err
}

// SearchStats aggregates all recorded searches.
func (s *SearchLogService) SearchStats(ctx context.Context) (*qalink.SearchStats, error) {
	stats := &qalink.SearchStats{ByStage: map[string]int{}}

	rows, err := s.db.QueryContext(ctx, `
		SELECT stage, COUNT(*) FROM searches GROUP BY stage
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var stage string
		var count int
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, err
		}
		stats.ByStage[stage] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		var avgMs float64
		err := s.db.QueryRowContext(ctx, `
			SELECT AVG(duration_ms) FROM searches
		`).Scan(&avgMs)
		if err != nil {
			return nil, err
		}
		stats.AvgDuration = time.Duration(avgMs * float64(time.Millisecond))
	}

	return stats, nil
}
