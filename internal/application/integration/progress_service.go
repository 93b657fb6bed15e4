package integration

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/domain/integration"
)

// Pagination bounds for progress listings.
const (
	defaultProgressLimit = 50
	maxProgressLimit     = 200
)

// ProgressService serves consolidated cross-platform progress queries.
type ProgressService struct {
	progressRepo integration.ProgressRepository
	cache        SummaryCache
	logger       *zap.Logger
}

// NewProgressService creates a ProgressService. cache may be nil.
func NewProgressService(progressRepo integration.ProgressRepository, cache SummaryCache, logger *zap.Logger) *ProgressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{progressRepo: progressRepo, cache: cache, logger: logger}
}

// ListProgress returns a page of progress records for the tenant plus
// the unpaged total. Out-of-range limits are folded into bounds rather
// than rejected.
func (s *ProgressService) ListProgress(ctx context.Context, tenantID uuid.UUID, filter integration.ProgressFilter) ([]integration.ExternalProgressRecord, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultProgressLimit
	}
	if filter.Limit > maxProgressLimit {
		filter.Limit = maxProgressLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.progressRepo.ListProgress(ctx, tenantID, filter)
}

// Summary returns the tenant's aggregate progress view, served from
// cache when a sync has not invalidated it since the last read.
func (s *ProgressService) Summary(ctx context.Context, tenantID uuid.UUID) (*integration.ProgressSummary, error) {
	if s.cache != nil {
		if summary, ok := s.cache.Get(ctx, tenantID); ok {
			return summary, nil
		}
	}

	summary, err := s.progressRepo.Summary(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, tenantID, summary)
	}
	return summary, nil
}
