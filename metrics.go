package prioritypool

import (
	"sync/atomic"
)

// MetricsPolicy defines hooks used by the pool to report job throughput.
// Implementations must be safe for concurrent use; IncExecuted is called
// on every worker's hot path and must be lightweight and non-blocking.
type MetricsPolicy interface {
	// IncExecuted is called once a job's Work has returned or panicked.
	IncExecuted()
}

// AtomicMetrics is a lock-free MetricsPolicy backed by an atomic
// counter.
type AtomicMetrics struct {
	// executed is the total number of jobs that finished running.
	executed atomic.Uint64
}

// Executed returns the total number of executed jobs.
// Intended for cold-path observation.
func (m *AtomicMetrics) Executed() uint64 {
	return m.executed.Load()
}

// IncExecuted increments the executed jobs counter by one.
func (m *AtomicMetrics) IncExecuted() {
	m.executed.Add(1)
}

// NoopMetrics is a MetricsPolicy implementation that discards all metric
// updates. It is the pool's default when no MetricsPolicy is configured.
type NoopMetrics struct{}

func (NoopMetrics) IncExecuted() {}
