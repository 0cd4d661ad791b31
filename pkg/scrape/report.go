package scrape

// Status is the terminal state of one shard's batch run. The halt on budget
// exhaustion is a first-class outcome here, not something to infer from a
// smaller result map.
type Status string

const (
	// StatusSuccess means every identifier in the shard produced a payload.
	StatusSuccess Status = "success"

	// StatusDegraded means the shard ran to the end but skipped identifiers
	// that failed transiently.
	StatusDegraded Status = "degraded"

	// StatusHalted means the failure budget was exhausted and the shard's
	// remaining identifiers were abandoned, never attempted.
	StatusHalted Status = "halted"

	// StatusAborted means a fatal error stopped the shard early; the run's
	// error return carries it.
	StatusAborted Status = "aborted"
)

// Report describes how one shard's batch run ended.
type Report struct {
	// Shard is the shard's index in partition order.
	Shard int

	// Size is the number of identifiers assigned to the shard.
	Size int

	// Attempted counts fetches actually performed. Cache hits and
	// identifiers abandoned after a halt are not attempts.
	Attempted int

	// Succeeded counts fetches that produced a payload.
	Succeeded int

	// CacheHits counts identifiers served from the payload cache.
	CacheHits int

	// Timeouts counts transport timeouts recorded against the budget.
	Timeouts int

	// TransportFailures counts non-timeout transport failures recorded
	// against the same budget.
	TransportFailures int

	// Status is the shard's terminal state.
	Status Status
}

// Collected returns how many of the shard's identifiers produced payloads,
// whether fetched or served from cache.
func (r Report) Collected() int {
	return r.Succeeded + r.CacheHits
}
