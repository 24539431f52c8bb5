// Package prioritypool provides a priority-aware worker pool: an
// in-process concurrency primitive that accepts units of deferred work,
// dispatches them across a fixed set of long-lived workers, and honours a
// three-level priority ordering (HIGH, NORMAL, LOW) while tolerating a
// mismatch between the priority mix of submitted work and the priority
// mix of available workers.
//
// Architecture
//
// The pool is built from three cooperating pieces:
//
//  1. Queue — a priority-keyed multi-bucket structure guarded by a single
//     mutex. Jobs within a priority bucket are FIFO.
//  2. Worker — a long-lived goroutine with a priority-fallback selection
//     policy (its "match list") and a condition-driven wait loop.
//  3. Pool — lifecycle owner. It wires workers to the queue, demotes
//     unroutable work to NORMAL priority, and drains jobs on shutdown.
//
// Unlike the segmented, lock-free, multi-strategy scheduler this package
// was adapted from, there is exactly one queue implementation here: a
// mutex-guarded map from Priority to a FIFO slice of jobs. There is no
// work-stealing, no dynamic worker scaling, no job dependency graph, no
// preemption of a running job, and no fairness/aging guarantee — a
// steady stream of HIGH work routable to the same worker can starve a
// LOW job indefinitely.
//
// Priority fallback
//
// Each worker is constructed with a nominal priority and derives a
// static match list of priorities it will accept, in preference order:
//
//	HIGH   -> HIGH, NORMAL
//	NORMAL -> NORMAL, LOW, HIGH
//	LOW    -> LOW, NORMAL, HIGH
//
// A HIGH worker never parks on LOW work while NORMAL work exists; NORMAL
// and LOW workers drain their own class first but accept others when
// idle. This produces implicit work-conservation without stealing.
//
// Demotion
//
// If a HIGH or LOW job is submitted while the pool has zero registered
// workers of that nominal priority (per the last call to
// SetWorkerPriorityCounts), the job is rewritten to NORMAL before it is
// enqueued. The worker-count table is refreshed only on explicit
// SetWorkerPriorityCounts calls — not automatically on AddWorker/
// RemoveWorker — matching the source design this package was adapted
// from.
//
// Error handling
//
// A panicking Job.Work is recovered at the worker boundary; the job is
// considered failed, the worker keeps running, and the failure is
// reported through the pool's optional OnJobError hook (or delivered
// through the Future returned by Submit). Internal pool errors, such as
// an error aggregated while stopping workers, go through OnInternalError.
//
// CPU pinning
//
// On Linux, a worker may optionally be pinned to a CPU core via
// WithPinnedCPU, locking its goroutine to an OS thread restricted to that
// core. This is useful for HIGH-priority workers where dispatch latency
// matters more than scheduler flexibility; it is not universally
// beneficial and defaults to off.
package prioritypool
