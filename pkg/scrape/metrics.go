package scrape

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for scrape runs.
var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chargescan_fetches_total",
		Help: "Total fetch attempts by run keyword and result",
	}, []string{"keyword", "result"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chargescan_fetch_duration_seconds",
		Help:    "Per-identifier fetch duration in seconds by run keyword",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"keyword"})

	shardsHaltedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chargescan_shards_halted_total",
		Help: "Shards truncated by failure budget exhaustion, by run keyword",
	}, []string{"keyword"})

	runIdentifiers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chargescan_run_identifiers",
		Help: "Identifiers in the most recent run by state (requested, collected)",
	}, []string{"keyword", "state"})
)

// Result label values for fetchesTotal.
const (
	resultSuccess   = "success"
	resultTimeout   = "timeout"
	resultTransport = "transport"
	resultFatal     = "fatal"
)
