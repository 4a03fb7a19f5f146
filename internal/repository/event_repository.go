// internal/repository/event_repository.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// EventRepository is the append-only event log.
type EventRepository interface {
	Insert(ctx context.Context, event *entity.Event) error
	// ExistsRecentPageView reports a matching page view within window of the store's own
	// clock, the same clock that stamps created_at.
	ExistsRecentPageView(ctx context.Context, sessionID, pageURL string, window time.Duration) (bool, error)
	ListByRange(ctx context.Context, r entity.EventRange) ([]entity.Event, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Ping(ctx context.Context) error
}

const eventColumns = `id, event_type, entity_type, entity_id, session_id, user_id, page_url, user_agent, ip_address, metadata, created_at`

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

// Insert writes the event and fills in the server-assigned id and created_at.
func (r *eventRepository) Insert(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO analytics_events (event_type, entity_type, entity_id, session_id, user_id, page_url, user_agent, ip_address, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		event.EventType,
		event.EntityType,
		event.EntityID,
		event.SessionID,
		event.UserID,
		event.PageURL,
		event.UserAgent,
		event.IPAddress,
		event.Metadata,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

func (r *eventRepository) ExistsRecentPageView(ctx context.Context, sessionID, pageURL string, window time.Duration) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM analytics_events
			WHERE event_type = $1 AND session_id = $2 AND page_url = $3
				AND created_at >= now() - ($4 * interval '1 millisecond')
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, entity.EventPageView, sessionID, pageURL, window.Milliseconds()); err != nil {
		return false, fmt.Errorf("failed to check recent page view: %w", err)
	}

	return exists, nil
}

// ListByRange returns events with created_at in [Start, End), oldest first.
func (r *eventRepository) ListByRange(ctx context.Context, er entity.EventRange) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM analytics_events WHERE created_at >= $1 AND created_at < $2`
	args := []interface{}{er.Start, er.End}

	if len(er.EventTypes) > 0 {
		query += ` AND event_type = ANY($3)`
		args = append(args, pq.Array(er.EventTypes))
	}
	query += ` ORDER BY created_at ASC, id ASC`

	events := []entity.Event{}
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

func (r *eventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analytics_events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old events: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get deleted rows: %w", err)
	}

	return deleted, nil
}

func (r *eventRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
