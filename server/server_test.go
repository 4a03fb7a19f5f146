package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	analyticsHandler "github.com/dinerozz/parts-analytics-backend/internal/handler/analytics"
	authHandler "github.com/dinerozz/parts-analytics-backend/internal/handler/auth"
	retentionHandler "github.com/dinerozz/parts-analytics-backend/internal/handler/retention"
	trackingHandler "github.com/dinerozz/parts-analytics-backend/internal/handler/tracking"
	"github.com/dinerozz/parts-analytics-backend/internal/service/tracking"
	"github.com/dinerozz/parts-analytics-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTracking struct{}

func (stubTracking) Record(ctx context.Context, req entity.CreateEventRequest) (*tracking.Result, error) {
	return &tracking.Result{EventID: 7}, nil
}

type stubAnalytics struct{}

func (stubAnalytics) Dashboard(ctx context.Context, q entity.RangeQuery) (*entity.DashboardResponse, error) {
	return &entity.DashboardResponse{PeriodDays: 30}, nil
}

func (stubAnalytics) Traffic(ctx context.Context, q entity.RangeQuery, granularity string) (*entity.TrafficResponse, error) {
	return &entity.TrafficResponse{}, nil
}

func (stubAnalytics) ProductAnalytics(ctx context.Context, q entity.RangeQuery, limit int) (*entity.ProductAnalyticsResponse, error) {
	return &entity.ProductAnalyticsResponse{}, nil
}

type stubRetention struct {
	calls int
}

func (s *stubRetention) Purge(ctx context.Context) (*entity.PurgeResult, error) {
	s.calls++
	return &entity.PurgeResult{Deleted: 3, Cutoff: time.Now()}, nil
}

func newTestRouter(checks ...healthCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return setupRouter(&RouterHandler{
		trackingHandler:  trackingHandler.NewTrackingHandler(stubTracking{}),
		analyticsHandler: analyticsHandler.NewAnalyticsHandler(stubAnalytics{}),
		authHandler:      authHandler.NewAuthHandler("admin", ""),
		retentionHandler: retentionHandler.NewRetentionHandler(&stubRetention{}),
		allowedOrigin:    "https://parts.example",
		healthChecks:     checks,
	})
}

func TestHealth(t *testing.T) {
	ok := healthCheck{name: "events", ping: func(context.Context) error { return nil }}
	down := healthCheck{name: "redis", ping: func(context.Context) error { return errors.New("connection refused") }}

	w := httptest.NewRecorder()
	newTestRouter(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)

	w = httptest.NewRecorder()
	newTestRouter(ok, down).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestTrackEventRouteIsPublic(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(`{"event_type":"page_view","page_url":"/"}`))
	req.Header.Set("Content-Type", "application/json")

	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newTestRouter()

	for _, path := range []string{
		"/api/v1/admin/analytics/dashboard",
		"/api/v1/admin/analytics/traffic",
		"/api/v1/admin/analytics/products",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/analytics/retention/purge", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesWithToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	token, err := utils.GenerateToken("admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/analytics/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"period_days":30`)
}

func TestCORS(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/events", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/api/v1/events", nil)
	req.Header.Set("Origin", "https://parts.example")
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://parts.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/api/v1/events", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter()

	// one request so the HTTP collectors have a sample
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestStartRetentionJob(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))

	_, err := startRetentionJob("not a schedule", &stubRetention{}, time.UTC, logger)
	assert.Error(t, err)

	c, err := startRetentionJob("30 3 * * *", &stubRetention{}, time.UTC, logger)
	require.NoError(t, err)
	defer c.Stop()

	entries := c.Entries()
	require.Len(t, entries, 1)
	next := entries[0].Next.In(time.UTC)
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 30, next.Minute())
}
