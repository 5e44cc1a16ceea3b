package mock

import (
	"context"

	"github.com/fwojciec/qalink"
)

var _ qalink.SearchLogService = (*SearchLogService)(nil)

// SearchLogService is a mock implementation of qalink.SearchLogService.
type SearchLogService struct {
	RecordSearchFn func(ctx context.Context, rec *qalink.SearchRecord) error
	SearchStatsFn  func(ctx context.Context) (*qalink.SearchStats, error)
}

func (s *SearchLogService) RecordSearch(ctx context.Context, rec *qalink.SearchRecord) error {
	return s.RecordSearchFn(ctx, rec)
}

func (s *SearchLogService) SearchStats(ctx context.Context) (*qalink.SearchStats, error) {
	return s.SearchStatsFn(ctx)
}
