package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Response-cache counters. Registered on the default registry and exposed
// through the /metrics endpoint.
var (
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "go_mart_cache_hits_total",
		Help: "Number of response-cache lookups served from memory.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "go_mart_cache_misses_total",
		Help: "Number of response-cache lookups that required a recompute.",
	})

	CacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "go_mart_cache_evictions_total",
		Help: "Number of expired entries removed by the cache janitor.",
	})

	CacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "go_mart_cache_invalidations_total",
		Help: "Number of entries purged by write-path invalidation.",
	})
)
