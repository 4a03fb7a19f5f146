// internal/service/analytics_service/analytics_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/analytics"
	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/dinerozz/parts-analytics-backend/internal/metrics"
	"github.com/dinerozz/parts-analytics-backend/internal/repository"
)

const (
	DefaultTopLimit = 10
	MaxTopLimit     = 100
)

// Report names, also used as metric labels
const (
	ReportDashboard = "dashboard"
	ReportTraffic   = "traffic"
	ReportProducts  = "products"
)

var (
	dashboardEventTypes = []string{entity.EventPageView, entity.EventProductView, entity.EventUnitClick, entity.EventUnitActionClick, entity.EventSlideView, entity.EventSlideClick}
	trafficEventTypes   = []string{entity.EventPageView, entity.EventUnitClick, entity.EventUnitActionClick}
	productEventTypes   = []string{entity.EventProductView, entity.EventUnitClick, entity.EventUnitActionClick}
)

type AnalyticsService interface {
	Dashboard(ctx context.Context, q entity.RangeQuery) (*entity.DashboardResponse, error)
	Traffic(ctx context.Context, q entity.RangeQuery, granularity string) (*entity.TrafficResponse, error)
	ProductAnalytics(ctx context.Context, q entity.RangeQuery, limit int) (*entity.ProductAnalyticsResponse, error)
}

type analyticsService struct {
	events  repository.EventRepository
	catalog repository.CatalogRepository
	loc     *time.Location
	logger  *slog.Logger
	now     func() time.Time
}

func NewAnalyticsService(events repository.EventRepository, catalog repository.CatalogRepository, loc *time.Location, logger *slog.Logger) AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &analyticsService{
		events:  events,
		catalog: catalog,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

// snapshot is one read of the event store covering the requested range and the
// comparison window before it. Every figure in a report is computed from it.
type snapshot struct {
	current analytics.Range
	events  []entity.Event
	// events inside current only
	inRange []entity.Event
}

func (s *analyticsService) load(ctx context.Context, q entity.RangeQuery, eventTypes []string) (*snapshot, error) {
	r, err := analytics.ResolveRange(q, s.now(), s.loc)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{current: r, events: []entity.Event{}, inRange: []entity.Event{}}
	if r.Empty() {
		return snap, nil
	}

	prev := analytics.PreviousRange(r)
	events, err := s.events.ListByRange(ctx, entity.EventRange{
		Start:      prev.Start,
		End:        r.End,
		EventTypes: eventTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}

	snap.events = events
	for _, e := range events {
		if !e.CreatedAt.Before(r.Start) && e.CreatedAt.Before(r.End) {
			snap.inRange = append(snap.inRange, e)
		}
	}

	return snap, nil
}

func (s *analyticsService) observe(report string, started time.Time, snap *snapshot, err error) {
	events := 0
	if snap != nil {
		events = len(snap.events)
	}
	metrics.RecordAggregation(report, events, time.Since(started), err)

	if err != nil {
		s.logger.Error("analytics report failed", slog.String("report", report), slog.String("error", err.Error()))
		return
	}
	s.logger.Debug("analytics report built",
		slog.String("report", report),
		slog.String("range", snap.current.String()),
		slog.Int("events", events),
		slog.Duration("took", time.Since(started)))
}

func (s *analyticsService) Dashboard(ctx context.Context, q entity.RangeQuery) (resp *entity.DashboardResponse, err error) {
	started := time.Now()
	var snap *snapshot
	defer func() { s.observe(ReportDashboard, started, snap, err) }()

	snap, err = s.load(ctx, q, dashboardEventTypes)
	if err != nil {
		return nil, err
	}

	cmp := analytics.Compare(snap.events, snap.current, analytics.GranularityDay, s.loc, analytics.TrafficClassifier)

	productCounts := analytics.CountByKey(snap.inRange, analytics.EntityKey(entity.EntityProduct), analytics.ProductClassifier)
	topProducts := analytics.Rank(productCounts, DefaultTopLimit)
	topUnits := analytics.TopN(snap.inRange, DefaultTopLimit, analytics.EntityKey(entity.EntityUnit), analytics.UnitClassifier)

	joined, err := s.joinCatalog(ctx, productCounts, topUnits)
	if err != nil {
		return nil, err
	}

	rollup := analytics.RollupByCategory(productCounts, joined.productCategories(), nil)

	days := analytics.Buckets(snap.current.Start, snap.current.End, analytics.GranularityDay, s.loc)
	slides := analytics.Aggregate(snap.inRange, days, analytics.SlideClassifier)

	return &entity.DashboardResponse{
		PeriodDays:    snap.current.Days(s.loc),
		GeneratedAt:   s.now(),
		StartDate:     snap.current.Start,
		EndDate:       snap.current.End,
		Granularity:   string(analytics.GranularityDay),
		Totals:        cmp.Current.Totals(),
		Comparison:    cmp.Summary(),
		Series:        cmp.Current.Series(),
		TopProducts:   joined.topProducts(topProducts),
		TopCategories: joined.topCategories(rollup, DefaultTopLimit),
		TopUnits:      joined.topUnits(topUnits),
		Slides:        slides.Totals(),
	}, nil
}

func (s *analyticsService) Traffic(ctx context.Context, q entity.RangeQuery, granularity string) (resp *entity.TrafficResponse, err error) {
	started := time.Now()
	var snap *snapshot
	defer func() { s.observe(ReportTraffic, started, snap, err) }()

	snap, err = s.load(ctx, q, trafficEventTypes)
	if err != nil {
		return nil, err
	}

	g := analytics.ParseGranularity(granularity)
	cmp := analytics.Compare(snap.events, snap.current, g, s.loc, analytics.TrafficClassifier)

	pages := analytics.TopN(snap.inRange, DefaultTopLimit, analytics.PageKey, analytics.TrafficClassifier)
	topPages := make([]entity.TopPage, 0, len(pages))
	for _, p := range pages {
		topPages = append(topPages, entity.TopPage{PageURL: p.Key, Views: p.Views, Clicks: p.Clicks})
	}

	return &entity.TrafficResponse{
		PeriodDays:  snap.current.Days(s.loc),
		GeneratedAt: s.now(),
		StartDate:   snap.current.Start,
		EndDate:     snap.current.End,
		Granularity: string(g),
		Totals:      cmp.Current.Totals(),
		Comparison:  cmp.Summary(),
		Series:      cmp.Current.Series(),
		TopPages:    topPages,
	}, nil
}

func (s *analyticsService) ProductAnalytics(ctx context.Context, q entity.RangeQuery, limit int) (resp *entity.ProductAnalyticsResponse, err error) {
	started := time.Now()
	var snap *snapshot
	defer func() { s.observe(ReportProducts, started, snap, err) }()

	limit = clampLimit(limit)

	snap, err = s.load(ctx, q, productEventTypes)
	if err != nil {
		return nil, err
	}

	cmp := analytics.Compare(snap.events, snap.current, analytics.GranularityDay, s.loc, analytics.ProductClassifier)

	productCounts := analytics.CountByKey(snap.inRange, analytics.EntityKey(entity.EntityProduct), analytics.ProductClassifier)
	top := analytics.Rank(productCounts, limit)

	joined, err := s.joinCatalog(ctx, productCounts, nil)
	if err != nil {
		return nil, err
	}

	rollup := analytics.RollupByCategory(productCounts, joined.productCategories(), nil)

	return &entity.ProductAnalyticsResponse{
		PeriodDays:  snap.current.Days(s.loc),
		GeneratedAt: s.now(),
		StartDate:   snap.current.Start,
		EndDate:     snap.current.End,
		Granularity: string(analytics.GranularityDay),
		Totals:      cmp.Current.Totals(),
		Comparison:  cmp.Summary(),
		Series:      cmp.Current.Series(),
		TopProducts: joined.topProducts(top),
		Categories:  joined.topCategories(rollup, len(rollup)),
	}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopLimit
	}
	if limit > MaxTopLimit {
		return MaxTopLimit
	}
	return limit
}
