package budget

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for failure budget tracking.
var (
	transientFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chargescan_transient_failures_total",
		Help: "Total transient fetch failures recorded, by kind",
	}, []string{"kind"})

	budgetExhaustionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chargescan_budget_exhaustions_total",
		Help: "Total shard halts due to failure budget exhaustion",
	})
)

// Tracker wraps a State with logging and metrics. Each shard gets its own
// Tracker; exhausting one shard's budget never affects its siblings.
type Tracker struct {
	state  *State
	logger zerolog.Logger
}

// NewTracker creates a failure budget tracker allowing max transient failures.
func NewTracker(max int, logger zerolog.Logger) *Tracker {
	return &Tracker{
		state:  NewState(max),
		logger: logger,
	}
}

// RecordTimeout counts a timeout against the budget and reports the decision.
func (t *Tracker) RecordTimeout() Decision {
	transientFailuresTotal.WithLabelValues("timeout").Inc()
	return t.decide(t.state.RecordTimeout())
}

// RecordTransport counts a non-timeout transport failure against the budget
// and reports the decision.
func (t *Tracker) RecordTransport() Decision {
	transientFailuresTotal.WithLabelValues("transport").Inc()
	return t.decide(t.state.RecordTransport())
}

func (t *Tracker) decide(d Decision) Decision {
	if d == Halt {
		budgetExhaustionsTotal.Inc()
		t.logger.Error().
			Int("failures", t.state.Count()).
			Int("max", t.state.Max()).
			Msg("failure budget exhausted, halting shard")
	} else {
		t.logger.Debug().
			Int("failures", t.state.Count()).
			Int("max", t.state.Max()).
			Msg("transient failure recorded")
	}
	return d
}

// Failures returns the number of transient failures recorded so far.
func (t *Tracker) Failures() int {
	return t.state.Count()
}
