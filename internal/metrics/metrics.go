package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion results
const (
	ResultAccepted  = "accepted"
	ResultDuplicate = "duplicate"
	ResultInvalid   = "invalid"
	ResultError     = "error"
)

var (
	EventsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_events_ingested_total",
			Help: "Tracking events processed by the ingestion endpoint, by result",
		},
		[]string{"event_type", "result"},
	)

	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_aggregation_duration_seconds",
			Help:    "Time spent building an analytics report",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report"},
	)

	AggregationEvents = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_aggregation_events",
			Help:    "Number of events read per analytics report",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
		[]string{"report"},
	)

	AggregationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_aggregation_errors_total",
			Help: "Analytics reports that failed",
		},
		[]string{"report"},
	)

	RetentionDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_retention_deleted_total",
			Help: "Events removed by the retention purge",
		},
	)

	RetentionLastRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analytics_retention_last_run_timestamp_seconds",
			Help: "Unix time of the last successful retention purge",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func RecordIngest(eventType, result string) {
	if eventType == "" {
		eventType = "unknown"
	}
	EventsIngested.WithLabelValues(eventType, result).Inc()
}

func RecordAggregation(report string, events int, duration time.Duration, err error) {
	AggregationDuration.WithLabelValues(report).Observe(duration.Seconds())
	if err != nil {
		AggregationErrors.WithLabelValues(report).Inc()
		return
	}
	AggregationEvents.WithLabelValues(report).Observe(float64(events))
}

func RecordRetention(deleted int64) {
	RetentionDeleted.Add(float64(deleted))
	RetentionLastRun.Set(float64(time.Now().Unix()))
}

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
