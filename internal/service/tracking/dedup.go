package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/repository"
	"github.com/dinerozz/parts-analytics-backend/internal/service/redis"
)

const DefaultDedupWindow = 30 * time.Second

// DuplicateChecker decides whether a page view repeats one recorded within the window.
// Checks are best-effort: there is no lock between the check and the insert, so two
// concurrent identical page views may both be accepted.
type DuplicateChecker interface {
	IsDuplicate(ctx context.Context, sessionID, pageURL string, now time.Time) (bool, error)
	// Forget undoes any claim IsDuplicate made when the insert that followed it failed.
	Forget(ctx context.Context, sessionID, pageURL string)
}

type storeChecker struct {
	repo   repository.EventRepository
	window time.Duration
}

// NewStoreChecker looks for a matching page view in the event store.
func NewStoreChecker(repo repository.EventRepository, window time.Duration) DuplicateChecker {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	return &storeChecker{repo: repo, window: window}
}

// IsDuplicate ignores now: the store measures the window against the clock that stamped created_at.
func (c *storeChecker) IsDuplicate(ctx context.Context, sessionID, pageURL string, _ time.Time) (bool, error) {
	return c.repo.ExistsRecentPageView(ctx, sessionID, pageURL, c.window)
}

func (c *storeChecker) Forget(context.Context, string, string) {}

type redisChecker struct {
	redis  redis.ServiceInterface
	window time.Duration
}

// NewRedisChecker claims a SET NX key per (session, page) that expires after the window.
func NewRedisChecker(r redis.ServiceInterface, window time.Duration) DuplicateChecker {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	return &redisChecker{redis: r, window: window}
}

func dedupKey(sessionID, pageURL string) string {
	return fmt.Sprintf("analytics:pv:%s:%s", sessionID, pageURL)
}

func (c *redisChecker) IsDuplicate(ctx context.Context, sessionID, pageURL string, now time.Time) (bool, error) {
	claimed, err := c.redis.SetNX(ctx, dedupKey(sessionID, pageURL), now.UnixMilli(), c.window)
	if err != nil {
		return false, err
	}
	return !claimed, nil
}

func (c *redisChecker) Forget(ctx context.Context, sessionID, pageURL string) {
	_ = c.redis.Delete(ctx, dedupKey(sessionID, pageURL))
}
