package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumagram_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lumagram_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// SubscriptionTransitions counts follow-edge state transitions.
	SubscriptionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumagram_subscription_transitions_total",
		Help: "Total number of subscription state transitions by kind",
	}, []string{"kind"})

	// FeedPageLatency records how long assembling one feed page takes.
	FeedPageLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lumagram_feed_page_latency_seconds",
		Help:    "Latency of assembling one personalized feed page",
		Buckets: prometheus.DefBuckets,
	})
)

// ObserveQuery records the latency of a database query since start.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}
