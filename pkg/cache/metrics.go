package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks payload cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chargescan_cache_hits_total",
			Help: "Total number of payload cache hits",
		},
	)

	// CacheMisses tracks payload cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chargescan_cache_misses_total",
			Help: "Total number of payload cache misses",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chargescan_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
