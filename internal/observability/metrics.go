package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "miso_redis_errors_total",
		Help: "Total number of Redis command errors by command",
	}, []string{"command"})

	// ArticleLikes counts like and unlike actions by outcome.
	ArticleLikes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "miso_article_likes_total",
		Help: "Total number of like toggle actions by outcome",
	}, []string{"outcome"})

	// SearchQueries counts search requests by target surface.
	SearchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "miso_search_queries_total",
		Help: "Total number of search queries by target",
	}, []string{"target"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "miso_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
