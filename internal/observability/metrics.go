// Package observability exposes Prometheus metrics for the gateway's cache
// and upstream interactions.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts cache hits per operation.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "localfind_cache_hits_total",
		Help: "Number of cache hits, labeled by operation.",
	}, []string{"operation"})

	// CacheMisses counts cache misses per operation. A disabled cache
	// store counts every read as a miss.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "localfind_cache_misses_total",
		Help: "Number of cache misses, labeled by operation.",
	}, []string{"operation"})

	// UpstreamRequests counts provider calls per operation and outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "localfind_upstream_requests_total",
		Help: "Number of upstream provider calls, labeled by operation and outcome.",
	}, []string{"operation", "outcome"})

	// UpstreamDuration observes provider call latency per operation.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "localfind_upstream_request_duration_seconds",
		Help:    "Latency of upstream provider calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// Outcome labels for UpstreamRequests.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)
