package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/dinerozz/parts-analytics-backend/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// NewRepository opens the Postgres pool holding analytics_events and the catalog tables.
func NewRepository(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres %s:%s/%s: %w", cfg.Host, cfg.Port, cfg.DBName, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	log.Printf("✅ Connected to PostgreSQL at %s:%s/%s", cfg.Host, cfg.Port, cfg.DBName)

	return db, nil
}
