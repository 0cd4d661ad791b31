// Package metrics provides the centralized Prometheus metrics registry for
// chargescan. All metrics are defined in their respective packages (scrape,
// budget, cache) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by chargescan.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Scrape Metrics (pkg/scrape):
//   - chargescan_fetches_total{keyword, result} (Counter): Fetch attempts by run keyword and result (success, timeout, transport, fatal)
//   - chargescan_fetch_duration_seconds{keyword} (Histogram): Per-identifier fetch duration
//   - chargescan_shards_halted_total{keyword} (Counter): Shards truncated by budget exhaustion
//   - chargescan_run_identifiers{keyword, state} (Gauge): Identifiers in the last run by state (requested, collected)
//
// Budget Metrics (pkg/budget):
//   - chargescan_transient_failures_total{kind} (Counter): Transient failures recorded by kind (timeout, transport)
//   - chargescan_budget_exhaustions_total (Counter): Budget exhaustion halts
//
// Cache Metrics (pkg/cache):
//   - chargescan_cache_hits_total (Counter): Payload cache hits
//   - chargescan_cache_misses_total (Counter): Payload cache misses
//   - chargescan_cache_errors_total{operation} (Counter): Cache operation errors by operation (get, set, delete)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(chargescan_cache_hits_total[5m])) /
//   (sum(rate(chargescan_cache_hits_total[5m])) + sum(rate(chargescan_cache_misses_total[5m])))
//
//   # Transient Failure Rate
//   rate(chargescan_transient_failures_total[5m])
//
//   # P95 Fetch Latency
//   histogram_quantile(0.95, rate(chargescan_fetch_duration_seconds_bucket[5m]))
//
//   # Halted Shards
//   increase(chargescan_shards_halted_total[1h])
