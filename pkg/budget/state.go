// Package budget bounds how many transient fetch failures a shard tolerates
// before abandoning its remaining work.
//
// One counter is shared by both failure kinds, but the halt thresholds
// differ: timeouts halt once the count strictly exceeds the maximum, other
// transport failures halt once it reaches the maximum. The asymmetry is
// inherited behavior and is kept intentionally; callers must not unify the
// two comparisons.
package budget

// DefaultMaxFailures is the failure budget applied when none is configured.
const DefaultMaxFailures = 10

// Decision tells the caller whether to keep processing a shard.
type Decision int

const (
	// Continue means the budget still has room; skip the identifier and move on.
	Continue Decision = iota

	// Halt means the budget is exhausted; abandon the shard's remaining identifiers.
	Halt
)

func (d Decision) String() string {
	if d == Halt {
		return "halt"
	}
	return "continue"
}

// State is the pure failure-budget counter for one shard. It is not safe
// for concurrent use; each shard owns its own State.
type State struct {
	count int
	max   int
}

// NewState returns a State allowing max transient failures.
func NewState(max int) *State {
	return &State{max: max}
}

// RecordTimeout counts a transport timeout against the budget.
// Halts once the count strictly exceeds the maximum.
func (s *State) RecordTimeout() Decision {
	s.count++
	if s.count > s.max {
		return Halt
	}
	return Continue
}

// RecordTransport counts a non-timeout transport failure against the budget.
// Halts once the count reaches the maximum.
func (s *State) RecordTransport() Decision {
	s.count++
	if s.count >= s.max {
		return Halt
	}
	return Continue
}

// Count returns the number of failures recorded so far.
func (s *State) Count() int {
	return s.count
}

// Max returns the configured budget.
func (s *State) Max() int {
	return s.max
}
