package prioritypool

import (
	"time"

	"go.uber.org/zap"
)

const defaultDrainPollInterval = 100 * time.Millisecond

// Options configure a Pool at construction time. Zero values are
// replaced with sensible defaults by FillDefaults.
type Options struct {
	// Logger is handed to the pool's queue, which logs each push through
	// it unless the job's Ctx carries its own logger. Workers do not
	// inherit it; they log through the logger given by WithWorkerLogger.
	// A nil Logger is replaced with a no-op logger.
	Logger *zap.Logger

	// DrainPollInterval is the cadence at which StopPool(true, ...)
	// polls the queue for an empty drain. The source this package was
	// adapted from polls at a coarse ~100ms; this is that constant made
	// configurable.
	DrainPollInterval time.Duration

	// OnJobError, if set, is called whenever a job's Work panics.
	OnJobError func(error)

	// OnInternalError, if set, is called with errors internal to the
	// pool itself — currently, the aggregated result of stopping workers
	// that had a job panic since they were started.
	OnInternalError func(error)

	// Metrics receives job-throughput counters. Defaults to NoopMetrics.
	Metrics MetricsPolicy
}

// FillDefaults replaces zero-valued fields with the pool's defaults.
func (o *Options) FillDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.DrainPollInterval <= 0 {
		o.DrainPollInterval = defaultDrainPollInterval
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
}
