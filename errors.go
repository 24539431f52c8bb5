package prioritypool

import "errors"

var (
	// ErrPoolTerminated is returned by Submit when called after StopPool
	// has been invoked. AddJob has no error return and silently drops
	// the job in the same situation.
	ErrPoolTerminated = errors.New("prioritypool: pool terminated")

	// ErrNilWork is returned by Submit (and may be used by callers of
	// AddJob) when a job carries a nil Work function.
	ErrNilWork = errors.New("prioritypool: job has nil work function")
)
