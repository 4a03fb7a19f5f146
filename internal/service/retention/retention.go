package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/dinerozz/parts-analytics-backend/internal/metrics"
	"github.com/dinerozz/parts-analytics-backend/internal/repository"
)

const DefaultRetentionDays = 90

type RetentionService interface {
	// Purge deletes every event older than the retention window. Running it again
	// deletes nothing new, so it is safe to call from both cron and the admin API.
	Purge(ctx context.Context) (*entity.PurgeResult, error)
}

type retentionService struct {
	repo   repository.EventRepository
	days   int
	logger *slog.Logger
	now    func() time.Time
}

func NewRetentionService(repo repository.EventRepository, days int, logger *slog.Logger) RetentionService {
	if days <= 0 {
		days = DefaultRetentionDays
	}
	return &retentionService{repo: repo, days: days, logger: logger, now: time.Now}
}

func (s *retentionService) Purge(ctx context.Context) (*entity.PurgeResult, error) {
	cutoff := s.now().AddDate(0, 0, -s.days)

	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("retention purge failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}

	metrics.RecordRetention(deleted)
	s.logger.Info("retention purge finished",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff))

	return &entity.PurgeResult{Deleted: deleted, Cutoff: cutoff}, nil
}
