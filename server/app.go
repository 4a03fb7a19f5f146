package server

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/dinerozz/parts-analytics-backend/config"
	"github.com/dinerozz/parts-analytics-backend/internal/repository"
	service "github.com/dinerozz/parts-analytics-backend/internal/service/analytics_service"
	"github.com/dinerozz/parts-analytics-backend/internal/service/redis"
	"github.com/dinerozz/parts-analytics-backend/internal/service/retention"
	"github.com/dinerozz/parts-analytics-backend/internal/service/tracking"
	"github.com/dinerozz/parts-analytics-backend/pkg/utils"
)

// App is the set of wired services shared by the HTTP server and the CLI jobs.
type App struct {
	Location  *time.Location
	Events    repository.EventRepository
	Redis     redis.ServiceInterface
	Tracking  tracking.TrackingService
	Analytics service.AnalyticsService
	Retention retention.RetentionService

	closers []func() error
}

func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{}

	loc := utils.LoadLocation(cfg.Analytics.Timezone)
	app.Location = loc
	logger.Info("analytics timezone", slog.String("zone", loc.String()))

	db, err := repository.NewRepository(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, db.Close)

	switch cfg.Analytics.EventStore {
	case config.StoreClickHouse:
		conn, err := repository.NewClickHouseConn(ctx, cfg.ClickHouse, logger)
		if err != nil {
			app.Close()
			return nil, err
		}
		chRepo := repository.NewClickHouseEventRepository(conn, logger)
		app.closers = append(app.closers, chRepo.Close)
		if err := chRepo.InitSchema(ctx); err != nil {
			app.Close()
			return nil, err
		}
		app.Events = chRepo
		log.Println("✅ Events stored in ClickHouse")
	default:
		app.Events = repository.NewEventRepository(db)
	}

	catalog := repository.NewCachedCatalogRepository(repository.NewCatalogRepository(db), cfg.Analytics.CatalogCacheTTL)

	var dedup tracking.DuplicateChecker
	if cfg.Analytics.DedupBackend == config.DedupRedis {
		if rs := redis.NewRedisService(redis.RedisConfig(cfg.Redis)); rs != nil {
			app.Redis = rs
			app.closers = append(app.closers, rs.Close)
			dedup = tracking.NewRedisChecker(rs, cfg.Analytics.DedupWindow)
		} else {
			log.Println("⚠️ Redis unavailable, page view dedup falls back to the event store")
		}
	}
	if dedup == nil {
		dedup = tracking.NewStoreChecker(app.Events, cfg.Analytics.DedupWindow)
	}

	app.Tracking = tracking.NewTrackingService(app.Events, dedup, logger)
	app.Analytics = service.NewAnalyticsService(app.Events, catalog, loc, logger)
	app.Retention = retention.NewRetentionService(app.Events, cfg.Analytics.RetentionDays, logger)

	return app, nil
}

// Close releases connections in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
