package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/dinerozz/parts-analytics-backend/internal/entity"
)

// ClickHouseEventRepository stores events in a MergeTree table. ClickHouse has no
// sequences, so ids are derived from the insert clock and kept strictly increasing.
type ClickHouseEventRepository struct {
	conn   driver.Conn
	logger *slog.Logger
	lastID atomic.Int64
}

var _ EventRepository = (*ClickHouseEventRepository)(nil)

func NewClickHouseEventRepository(conn driver.Conn, logger *slog.Logger) *ClickHouseEventRepository {
	return &ClickHouseEventRepository{conn: conn, logger: logger}
}

func (r *ClickHouseEventRepository) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS analytics_events (
		id Int64,
		event_type LowCardinality(String),
		entity_type Nullable(String),
		entity_id Nullable(String),
		session_id String,
		user_id Nullable(String),
		page_url String,
		user_agent String,
		ip_address String,
		metadata String,
		created_at DateTime64(3, 'UTC')
	) ENGINE = MergeTree
	PARTITION BY toYYYYMM(created_at)
	ORDER BY (created_at, session_id)
	`

	if err := r.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create analytics_events table: %w", err)
	}

	r.logger.Info("clickhouse schema initialized")
	return nil
}

func (r *ClickHouseEventRepository) nextID(now time.Time) int64 {
	for {
		last := r.lastID.Load()
		id := now.UnixNano()
		if id <= last {
			id = last + 1
		}
		if r.lastID.CompareAndSwap(last, id) {
			return id
		}
	}
}

func (r *ClickHouseEventRepository) Insert(ctx context.Context, event *entity.Event) error {
	now := time.Now().UTC()

	metadata := "{}"
	if event.Metadata != nil {
		b, err := json.Marshal(event.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadata = string(b)
	}

	id := r.nextID(now)
	query := `INSERT INTO analytics_events (id, event_type, entity_type, entity_id, session_id, user_id, page_url, user_agent, ip_address, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	err := r.conn.Exec(ctx, query,
		id,
		event.EventType,
		event.EntityType,
		event.EntityID,
		event.SessionID,
		event.UserID,
		event.PageURL,
		event.UserAgent,
		event.IPAddress,
		metadata,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	event.ID = id
	event.CreatedAt = now
	return nil
}

// ExistsRecentPageView measures the window on this process's clock because Insert
// stamps created_at here rather than in ClickHouse.
func (r *ClickHouseEventRepository) ExistsRecentPageView(ctx context.Context, sessionID, pageURL string, window time.Duration) (bool, error) {
	query := `SELECT count() FROM analytics_events
		WHERE event_type = ? AND session_id = ? AND page_url = ? AND created_at >= ?`
	since := time.Now().UTC().Add(-window)

	var count uint64
	if err := r.conn.QueryRow(ctx, query, entity.EventPageView, sessionID, pageURL, since).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check recent page view: %w", err)
	}

	return count > 0, nil
}

func (r *ClickHouseEventRepository) ListByRange(ctx context.Context, er entity.EventRange) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM analytics_events WHERE created_at >= ? AND created_at < ?`
	args := []interface{}{er.Start, er.End}

	if len(er.EventTypes) > 0 {
		query += ` AND event_type IN (?` + strings.Repeat(", ?", len(er.EventTypes)-1) + `)`
		for _, t := range er.EventTypes {
			args = append(args, t)
		}
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("failed to close event rows", slog.String("error", err.Error()))
		}
	}()

	events := []entity.Event{}
	for rows.Next() {
		var (
			e        entity.Event
			metadata string
		)
		if err := rows.Scan(
			&e.ID,
			&e.EventType,
			&e.EntityType,
			&e.EntityID,
			&e.SessionID,
			&e.UserID,
			&e.PageURL,
			&e.UserAgent,
			&e.IPAddress,
			&metadata,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		if err := e.Metadata.Scan(metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata for event %d: %w", e.ID, err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event rows: %w", err)
	}

	return events, nil
}

// DeleteOlderThan counts first because ClickHouse mutations do not report affected rows.
func (r *ClickHouseEventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var count uint64
	if err := r.conn.QueryRow(ctx, `SELECT count() FROM analytics_events WHERE created_at < ?`, cutoff).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count old events: %w", err)
	}
	if count == 0 {
		return 0, nil
	}

	if err := r.conn.Exec(ctx, `ALTER TABLE analytics_events DELETE WHERE created_at < ?`, cutoff); err != nil {
		return 0, fmt.Errorf("failed to delete old events: %w", err)
	}

	return int64(count), nil
}

func (r *ClickHouseEventRepository) Ping(ctx context.Context) error {
	return r.conn.Ping(ctx)
}

func (r *ClickHouseEventRepository) Close() error {
	return r.conn.Close()
}
