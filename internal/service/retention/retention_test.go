package retention

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
)

// fakeRepo keeps only timestamps; DeleteOlderThan behaves like the SQL delete.
type fakeRepo struct {
	createdAt []time.Time
	err       error
}

func (r *fakeRepo) Insert(context.Context, *entity.Event) error { return nil }

func (r *fakeRepo) ExistsRecentPageView(context.Context, string, string, time.Duration) (bool, error) {
	return false, nil
}

func (r *fakeRepo) ListByRange(context.Context, entity.EventRange) ([]entity.Event, error) {
	return nil, nil
}

func (r *fakeRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	kept := r.createdAt[:0]
	var deleted int64
	for _, ts := range r.createdAt {
		if ts.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, ts)
	}
	r.createdAt = kept
	return deleted, nil
}

func (r *fakeRepo) Ping(context.Context) error { return nil }

func newTestService(repo *fakeRepo, now time.Time) *retentionService {
	svc := NewRetentionService(repo, 0, slog.New(slog.NewTextHandler(io.Discard, nil))).(*retentionService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestPurge_IsIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 3, 30, 0, 0, time.UTC)
	repo := &fakeRepo{createdAt: []time.Time{
		now.AddDate(0, 0, -200),
		now.AddDate(0, 0, -91),
		now.AddDate(0, 0, -89),
		now,
	}}
	svc := newTestService(repo, now)

	first, err := svc.Purge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.Deleted)
	assert.Equal(t, now.AddDate(0, 0, -90), first.Cutoff)

	second, err := svc.Purge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.Deleted)
	assert.Len(t, repo.createdAt, 2)
}

func TestPurge_StorageFailure(t *testing.T) {
	svc := newTestService(&fakeRepo{err: errors.New("connection reset")}, time.Now())

	_, err := svc.Purge(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrStorageUnavailable))
}
