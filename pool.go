package prioritypool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Pool is the lifecycle owner of the scheduling fabric: it owns the
// Queue and the set of Workers, demotes unroutable jobs, broadcasts
// wake-ups, and orchestrates graceful shutdown.
//
// Pool owns its Queue and its Workers by strong (normal Go) reference.
// Each Worker, in turn, holds only a non-owning atomic pointer back to
// the Queue — see Worker for why that matters during teardown. The
// Queue's wake-up callback, registered once at construction, closes over
// the pool without the pool needing to hold any reference back, so no
// cycle of ownership exists to reason about.
type Pool struct {
	queue *Queue

	workersMu      sync.Mutex
	workers        []*Worker
	priorityCounts map[Priority]int

	terminated atomic.Bool
	stopOnce   sync.Once

	opts Options
	log  *zap.Logger
}

// NewPool constructs a Pool with no registered workers. Callers add
// workers with AddWorker and, after any batch of registrations that
// introduces a new nominal priority class, must call
// SetWorkerPriorityCounts before submitting priority-sensitive jobs.
func NewPool(opts Options) *Pool {
	opts.FillDefaults()

	p := &Pool{
		priorityCounts: make(map[Priority]int, 3),
		opts:           opts,
		log:            opts.Logger,
	}
	p.queue = NewQueue(opts.Logger)
	p.queue.SetWakeup(p.NotifyWakeupWorkers)
	return p
}

// AddWorker registers w, wires it to the pool's queue, and starts it.
// Duplicate registrations (by identity) are silently rejected, as is any
// registration after the pool has been terminated.
func (p *Pool) AddWorker(w *Worker) {
	if p.terminated.Load() {
		return
	}

	p.workersMu.Lock()
	for _, existing := range p.workers {
		if existing == w {
			p.workersMu.Unlock()
			return
		}
	}
	p.workers = append(p.workers, w)
	p.workersMu.Unlock()

	w.setQueue(p.queue)
	w.Start()
}

// RemoveWorker unregisters w. It does NOT stop w — the caller remains
// responsible for that. This asymmetry is deliberate (see Open Questions
// in DESIGN.md): it mirrors the shutdown path, where workers are stopped
// as a distinct, explicit step from being dropped out of the pool's set.
func (p *Pool) RemoveWorker(w *Worker) {
	p.workersMu.Lock()
	defer p.workersMu.Unlock()

	for i, existing := range p.workers {
		if existing == w {
			p.workers = append(p.workers[:i], p.workers[i+1:]...)
			return
		}
	}
}

// SetWorkerPriorityCounts recomputes the count-by-nominal-priority table
// from the pool's current worker set. AddJob consults this table to
// decide whether a HIGH or LOW job must be demoted to NORMAL. The table
// is refreshed only by this explicit call — never automatically on
// AddWorker or RemoveWorker.
func (p *Pool) SetWorkerPriorityCounts() {
	p.workersMu.Lock()
	defer p.workersMu.Unlock()

	counts := make(map[Priority]int, 3)
	for _, w := range p.workers {
		counts[w.Priority()]++
	}
	p.priorityCounts = counts
}

// WorkerCount returns the number of currently registered workers.
func (p *Pool) WorkerCount() int {
	p.workersMu.Lock()
	defer p.workersMu.Unlock()
	return len(p.workers)
}

// WorkerCounts returns a read-only snapshot of the worker-count-by-
// nominal-priority table last computed by SetWorkerPriorityCounts.
func (p *Pool) WorkerCounts() map[Priority]int {
	p.workersMu.Lock()
	defer p.workersMu.Unlock()

	out := make(map[Priority]int, len(p.priorityCounts))
	for k, v := range p.priorityCounts {
		out[k] = v
	}
	return out
}

// AddJob enqueues job, demoting it to Normal priority first if it is
// High or Low and the pool's priority-count table (as of the last
// SetWorkerPriorityCounts call) records zero workers of that nominal
// priority. After StopPool has been called, AddJob silently drops the
// job.
func (p *Pool) AddJob(job Job) {
	p.addJob(job)
}

// addJob is AddJob's implementation, reporting whether the job was
// accepted. Submit uses the return value to resolve its Future
// immediately when the pool has already been terminated, instead of
// silently dropping the job and leaving the caller blocked forever.
func (p *Pool) addJob(job Job) bool {
	if p.terminated.Load() {
		return false
	}

	if job.Ctx == nil {
		job.Ctx = context.Background()
	}

	if job.Priority == High || job.Priority == Low {
		p.workersMu.Lock()
		count := p.priorityCounts[job.Priority]
		p.workersMu.Unlock()
		if count <= 0 {
			job.Priority = Normal
		}
	}

	work := job.Work
	jobID := job.ID
	job.Work = func() {
		defer func() {
			if r := recover(); r != nil {
				p.reportJobError(fmt.Errorf("job %d panicked: %v", jobID, r))
				panic(r)
			}
		}()
		if work != nil {
			work()
		}
	}

	onComplete := job.OnComplete
	job.OnComplete = func() {
		p.opts.Metrics.IncExecuted()
		if onComplete != nil {
			onComplete()
		}
	}
	job.Requeue = p.AddJob

	p.queue.Push(job)
	return true
}

// StopPool transitions the pool from active to terminated. If
// waitForFinish is true, it first polls the queue at DrainPollInterval
// until it is empty or maxWait elapses (a maxWait of zero means no
// timeout). It then stops every registered worker, in registration
// order, and clears the worker set. StopPool is idempotent: a second
// call is a no-op that returns nil.
func (p *Pool) StopPool(waitForFinish bool, maxWait time.Duration) error {
	var result error

	p.stopOnce.Do(func() {
		p.terminated.Store(true)

		if waitForFinish {
			start := time.Now()
			for p.queue.CountAll() > 0 {
				if maxWait > 0 && time.Since(start) >= maxWait {
					break
				}
				time.Sleep(p.opts.DrainPollInterval)
			}
		}

		p.workersMu.Lock()
		workers := p.workers
		p.workers = nil
		p.workersMu.Unlock()

		var errs []error
		for _, w := range workers {
			if err := w.Stop(); err != nil {
				errs = append(errs, err)
			}
		}
		result = multierr.Combine(errs...)
		p.reportInternalError(result)
	})

	return result
}

// NotifyWakeupWorkers signals every currently registered worker's
// condition variable. It is the queue's wake-up callback, registered
// once at construction.
func (p *Pool) NotifyWakeupWorkers() {
	p.workersMu.Lock()
	workers := p.workers
	p.workersMu.Unlock()

	for _, w := range workers {
		w.Notify()
	}
}
