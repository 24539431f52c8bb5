package prioritypool

import (
	"sync"

	"go.uber.org/zap"
)

// Queue is a thread-safe, priority-keyed multi-bucket store of pending
// jobs. Within a bucket, order is FIFO. The map only ever grows buckets
// that have held at least one job; an empty bucket lingering in the map
// does not change any observable behavior.
//
// A single mutex guards every operation. The wake-up callback registered
// via SetWakeup is invoked after a successful Push but, per this
// package's chosen ordering, after the queue's lock has been released —
// the only contract a caller can rely on is that a worker woken by the
// callback will see the new job on its next Pop.
type Queue struct {
	mu      sync.Mutex
	buckets map[Priority][]Job

	wakeupMu sync.RWMutex
	wakeup   func()

	log *zap.Logger
}

// NewQueue constructs an empty Queue. A nil logger is replaced with a
// no-op logger.
func NewQueue(logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{
		buckets: make(map[Priority][]Job),
		log:     logger,
	}
}

// SetWakeup registers a no-argument callback invoked once after every
// successful Push. Passing nil disables notification.
func (q *Queue) SetWakeup(callback func()) {
	q.wakeupMu.Lock()
	q.wakeup = callback
	q.wakeupMu.Unlock()
}

// Push inserts job at the back of the bucket matching job.Priority, then
// notifies the registered wake-up callback. Safe for concurrent use.
func (q *Queue) Push(job Job) {
	q.mu.Lock()
	q.buckets[job.Priority] = append(q.buckets[job.Priority], job)
	q.mu.Unlock()

	loggerFromContext(job.Ctx, q.log).Debug("job pushed",
		zap.Uint64("job_id", job.ID),
		zap.Stringer("priority", job.Priority),
	)

	q.wakeupMu.RLock()
	cb := q.wakeup
	q.wakeupMu.RUnlock()
	if cb != nil {
		cb()
	}
}

// Pop iterates priorities in the given order and removes and returns the
// head of the first non-empty bucket. It returns false if none of the
// listed priorities currently has a queued job. The iteration order is
// entirely the caller's policy — the queue imposes none of its own.
func (q *Queue) Pop(priorities []Priority) (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range priorities {
		bucket := q.buckets[p]
		if len(bucket) == 0 {
			continue
		}
		job := bucket[0]
		bucket[0] = Job{} // release the popped job's Payload/closures
		q.buckets[p] = bucket[1:]
		return job, true
	}
	return Job{}, false
}

// CountAll returns the sum of sizes across all buckets, a point-in-time
// snapshot.
func (q *Queue) CountAll() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	total := 0
	for _, bucket := range q.buckets {
		total += len(bucket)
	}
	return total
}

// Count returns the sum of sizes across only the listed priorities'
// buckets, a point-in-time snapshot.
func (q *Queue) Count(priorities []Priority) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	total := 0
	for _, p := range priorities {
		total += len(q.buckets[p])
	}
	return total
}
