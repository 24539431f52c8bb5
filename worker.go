package prioritypool

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Worker owns one long-lived goroutine. It waits for a job matching its
// priority range, executes jobs serially, and supports cooperative stop.
//
// A Worker holds a non-owning reference to the Queue it pulls from,
// stored in an atomic pointer rather than a strong reference: the pool
// owns the queue. The pointer is nil only until setQueue installs a
// queue (the pool never clears it); a worker started with a nil queue
// pointer stays parked on its wait predicate, re-checking its stop flag
// on every wake, instead of dereferencing nil.
type Worker struct {
	nominal Priority
	matches []Priority

	mu      sync.Mutex
	cond    *sync.Cond
	running bool
	stopped bool
	doneCh  chan struct{}
	lastErr error

	queue atomic.Pointer[Queue]

	pinCPU int
	log    *zap.Logger
}

// WorkerOption configures a Worker at construction time.
type WorkerOption func(*Worker)

// WithWorkerLogger attaches a structured logger to the worker.
func WithWorkerLogger(logger *zap.Logger) WorkerOption {
	return func(w *Worker) {
		if logger != nil {
			w.log = logger
		}
	}
}

// WithPinnedCPU pins the worker's goroutine to the given CPU core (Linux
// only; a no-op elsewhere). Intended for HIGH-priority workers where
// dispatch latency matters more than scheduler flexibility.
func WithPinnedCPU(cpu int) WorkerOption {
	return func(w *Worker) {
		w.pinCPU = cpu
	}
}

// NewWorker constructs a Worker with the given nominal priority. Its
// match list — the ordered set of priorities it will accept — is derived
// immediately and never changes for the lifetime of the worker.
func NewWorker(nominal Priority, opts ...WorkerOption) *Worker {
	if !nominal.valid() {
		nominal = Normal
	}
	w := &Worker{
		nominal: nominal,
		matches: matchList(nominal),
		pinCPU:  -1,
		log:     zap.NewNop(),
	}
	w.cond = sync.NewCond(&w.mu)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Priority returns the worker's nominal priority.
func (w *Worker) Priority() Priority {
	return w.nominal
}

// setQueue installs the (non-owning) queue the worker pulls from. Called
// by Pool.AddWorker before Start.
func (w *Worker) setQueue(q *Queue) {
	w.queue.Store(q)
}

// Start begins the worker's main loop on a new goroutine. Calling Start
// on an already-running worker first stops it, then restarts — matching
// the cooperative-stop-then-restart semantics of the source this package
// was adapted from.
func (w *Worker) Start() {
	w.mu.Lock()
	alreadyRunning := w.running
	w.mu.Unlock()
	if alreadyRunning {
		w.Stop()
	}

	w.mu.Lock()
	w.stopped = false
	w.running = true
	w.lastErr = nil
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go func() {
		if w.pinCPU >= 0 {
			pinToCPU(w.pinCPU, w.log)
		}
		w.loop()
	}()
}

// Stop sets the stop flag, wakes the worker, and waits for its goroutine
// to exit. It is idempotent; calling Stop on a non-running worker does
// nothing observable. Stop does not drain pending work — jobs still in
// the queue stay in the queue.
//
// The returned error is non-nil if any job this worker ran since its
// last Start panicked, and describes the most recent such panic; a later
// job that completes normally does not clear it. Pool.StopPool
// aggregates these across all workers it stops.
func (w *Worker) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	done := w.doneCh
	w.cond.Broadcast()
	w.mu.Unlock()

	<-done

	w.mu.Lock()
	w.running = false
	err := w.lastErr
	w.mu.Unlock()
	return err
}

// Notify wakes the worker so it re-evaluates its wait predicate. It is
// what Pool.NotifyWakeupWorkers calls on every registered worker after
// the queue's wake-up callback fires.
func (w *Worker) Notify() {
	w.mu.Lock()
	w.cond.Broadcast()
	w.mu.Unlock()
}

// wakePredicate reports whether the worker should stop waiting: either it
// has been told to stop, or a job in its match list is available. It must
// be called with w.mu held, and must be safe to re-evaluate on every
// spurious wake.
func (w *Worker) wakePredicate() bool {
	if w.stopped {
		return true
	}
	q := w.queue.Load()
	if q == nil {
		return false
	}
	return q.Count(w.matches) > 0
}

// loop is the worker's main loop. The worker's own mutex is held only
// around the wait and around the queue pop; it is released before
// Work runs. The queue's mutex is acquired only from inside Queue
// methods called here, never while the worker mutex is held by a
// concurrent caller reaching in from outside — so the two locks are
// always acquired worker-then-queue, never the reverse, and no ordering
// inversion is possible.
func (w *Worker) loop() {
	defer close(w.doneCh)

	for {
		w.mu.Lock()
		for !w.wakePredicate() {
			w.cond.Wait()
		}
		if w.stopped {
			w.mu.Unlock()
			return
		}

		q := w.queue.Load()
		if q == nil {
			w.mu.Unlock()
			continue
		}

		job, ok := q.Pop(w.matches)
		w.mu.Unlock()

		if !ok {
			// Another worker raced us to the job; loop and wait again.
			continue
		}

		w.execute(job)
	}
}

func (w *Worker) execute(job Job) {
	logger := loggerFromContext(job.Ctx, w.log)

	logger.Debug("dispatching job",
		zap.Uint64("job_id", job.ID),
		zap.Stringer("priority", job.Priority),
		zap.Stringer("worker_priority", w.nominal),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked",
				zap.Uint64("job_id", job.ID),
				zap.Any("panic", r),
			)
			w.mu.Lock()
			w.lastErr = fmt.Errorf("job %d panicked: %v", job.ID, r)
			w.mu.Unlock()
		}
		if job.OnComplete != nil {
			job.OnComplete()
		}
	}()

	if job.Work != nil {
		job.Work()
	}
}
