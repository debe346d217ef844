// Package metrics holds the Prometheus collectors for the matching core.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Feed
	FeedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacematch_feed_requests_total",
			Help: "Total number of feed requests by outcome",
		},
		[]string{"outcome"},
	)

	FeedDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spacematch_feed_duration_seconds",
			Help:    "Duration of feed generation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	FeedCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spacematch_feed_candidates",
			Help:    "Number of candidates scored per feed request",
			Buckets: []float64{0, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// Interactions and matches
	Interactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacematch_interactions_total",
			Help: "Total number of recorded swipes by type",
		},
		[]string{"type"},
	)

	MatchesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spacematch_matches_created_total",
			Help: "Total number of matches created from positive swipes",
		},
	)

	MatchTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacematch_match_transitions_total",
			Help: "Total number of match status transitions by target status",
		},
		[]string{"status"},
	)

	// Cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacematch_cache_hits_total",
			Help: "Total number of cache hits by cache",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacematch_cache_misses_total",
			Help: "Total number of cache misses by cache",
		},
		[]string{"cache"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacematch_cache_errors_total",
			Help: "Total number of failed cache calls by cache",
		},
		[]string{"cache"},
	)

	// gRPC
	GRPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacematch_grpc_requests_total",
			Help: "Total number of unary gRPC calls by method and code",
		},
		[]string{"method", "code"},
	)

	GRPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spacematch_grpc_duration_seconds",
			Help:    "Duration of unary gRPC calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// RecordFeed records one feed request.
func RecordFeed(outcome string, candidates int, d time.Duration) {
	FeedRequests.WithLabelValues(outcome).Inc()
	FeedCandidates.Observe(float64(candidates))
	FeedDuration.Observe(d.Seconds())
}

// RecordInteraction counts a stored swipe.
func RecordInteraction(kind string) {
	Interactions.WithLabelValues(kind).Inc()
}

// RecordMatchCreated counts a new match.
func RecordMatchCreated() {
	MatchesCreated.Inc()
}

// RecordMatchTransition counts a pending match moving to status.
func RecordMatchTransition(status string) {
	MatchTransitions.WithLabelValues(status).Inc()
}

// RecordCacheLookup counts a hit or miss for the named cache.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordCacheError counts a failed cache call.
func RecordCacheError(cache string) {
	CacheErrors.WithLabelValues(cache).Inc()
}

// RecordGRPC records one unary call.
func RecordGRPC(method, code string, d time.Duration) {
	GRPCRequests.WithLabelValues(method, code).Inc()
	GRPCDuration.WithLabelValues(method).Observe(d.Seconds())
}
