// Package metrics declares the Prometheus collectors for the trendwatch
// backend. Collectors are created at package init via promauto, so they are
// registered on the default registry and always safe to increment.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for CatalogFetches and EmptyResponses.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"

	ReasonFetchFailed = "fetch_failed"
	ReasonNoMatches   = "no_matches"
)

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trendwatch_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trendwatch_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendwatch_login_attempts_total",
			Help: "Login attempts, by outcome status.",
		},
		[]string{"status"},
	)

	// EmptyResponses distinguishes a provider outage (fetch_failed) from a
	// filter that matched nothing (no_matches).
	EmptyResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendwatch_empty_trending_responses_total",
			Help: "Trending responses served with a warning, by reason.",
		},
		[]string{"reason"},
	)

	CatalogFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendwatch_catalog_fetches_total",
			Help: "Provider fetches, by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trendwatch_cache_hits_total",
			Help: "Total number of cache hits.",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trendwatch_cache_misses_total",
			Help: "Total number of cache misses.",
		},
	)
)
