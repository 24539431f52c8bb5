package prioritypool

import "context"

// WorkFunc is a zero-argument, no-return unit of work. Any result
// plumbing (return values, propagated errors) is the caller's
// responsibility — see Submit for a future-based convenience wrapper.
type WorkFunc func()

// Job is a single unit of deferred work. A Job is either pending (held in
// exactly one queue bucket), running (held uniquely by a worker), or
// finished; it is never in two buckets and Work is never invoked more
// than once.
type Job struct {
	// ID opaquely identifies the job to the submitter; the core never
	// interprets it. Zero is a valid ID.
	ID uint64

	// Ctx carries this job's logger (via WithLogger) to the dispatch
	// path. A nil Ctx is replaced with context.Background() by
	// Pool.AddJob, matching the teacher's Submit/TrySubmit.
	Ctx context.Context

	// Priority determines which bucket the job lands in. The pool may
	// rewrite this to Normal at submission time (see demotion).
	Priority Priority

	// Work is called exactly once, if and only if the job is popped by a
	// worker. A panic inside Work is recovered by the worker and does not
	// propagate past it.
	Work WorkFunc

	// Payload is opaque user data owned exclusively by the job.
	Payload any

	// OnComplete, if set, runs after Work returns or panics — win or
	// lose, exactly once, on the worker goroutine that ran the job.
	OnComplete func()

	// Requeue, set to the pool's AddJob when the pool accepts the job
	// (via AddJob or Submit, replacing any caller-supplied value), lets
	// Work submit
	// follow-up jobs without reaching back into pool internals. It is
	// safe to call from inside Work: the queue mutex is released before
	// Work runs.
	Requeue func(Job)
}
