package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/service/retention"
	"github.com/robfig/cron/v3"
)

const purgeTimeout = 10 * time.Minute

// startRetentionJob runs Purge on the given five-field cron schedule in the store's timezone.
func startRetentionJob(schedule string, svc retention.RetentionService, loc *time.Location, logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()

		res, err := svc.Purge(ctx)
		if err != nil {
			logger.Error("scheduled retention purge failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("scheduled retention purge finished",
			slog.Int64("deleted", res.Deleted),
			slog.Time("cutoff", res.Cutoff))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse retention schedule %q: %w", schedule, err)
	}

	c.Start()
	return c, nil
}
