// Package metrics exposes Prometheus collectors for the HTTP and database
// layers. Handlers are observed by the gin middleware; repositories record
// query durations where latency matters.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration request latency by route and status
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// DBQueryDuration database query latency
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	// ImportRowsProcessed CSV import outcome counts
	ImportRowsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_processed_total",
			Help: "Total number of CSV progress rows processed",
		},
		[]string{"result"}, // imported, failed
	)

	// MetricsCacheHits dashboard snapshot cache outcomes
	MetricsCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metrics_cache_requests_total",
			Help: "Dashboard metrics cache lookups",
		},
		[]string{"result"}, // hit, miss
	)
)

// ObserveHTTPRequest records one finished HTTP request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveDBQuery records one database query.
func ObserveDBQuery(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
