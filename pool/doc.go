// Package pool provides a dynamically-typed, in-process worker pool for
// concurrent task execution.
//
// The core type is Supervisor, which owns a bounded Task Queue and a set
// of Workers. Submitted tasks implement Task (or TaskFunc for a plain
// closure) and return an AnyValue, a move-only dynamic container that
// lets a single pool carry results of any caller-chosen type without the
// pool itself being generic.
//
// # Basic Usage
//
//	sup := pool.New(pool.WithMode(pool.Fixed))
//	if err := sup.Start(4); err != nil {
//	    // handle error
//	}
//	defer sup.Shutdown(5 * time.Second)
//
//	future := pool.SubmitFuture[int](sup, pool.TaskFunc(func() pool.AnyValue {
//	    return pool.NewValue(21 * 2)
//	}))
//	n, err := future.Get()
//
// # Submission Variants
//
// Submit returns a *ResultSlot carrying an AnyValue (Variant A), useful
// when the caller already has a type witness in hand or wants to defer
// extraction. SubmitFuture wraps Submit in a generic Future[R] (Variant
// B) and is the recommended default: Future.Get extracts and type-checks
// the result in one call, reporting ErrTypeMismatch if the task produced
// something other than R.
//
// # Fixed and Elastic Modes
//
// In Fixed mode the worker count never changes after Start. In Elastic
// mode, Submit grows the worker count (up to WithMaxWorkers) whenever the
// queue backlog exceeds the number of idle workers, and a worker that has
// sat idle past WithIdleTimeout (default 60s) retires itself, so long as
// doing so would not drop the pool below its initial count.
//
//	sup := pool.New(
//	    pool.WithMode(pool.Elastic),
//	    pool.WithMaxWorkers(16),
//	    pool.WithIdleTimeout(30*time.Second),
//	)
//	sup.Start(2)
//
// # Retry and Rate Limiting
//
// Tasks can be retried in place, inside the Worker that drew them, with a
// choice of backoff algorithm:
//
//	sup := pool.New(
//	    pool.WithRetryPolicy(3, 100*time.Millisecond),
//	    pool.WithBackoffType(backoff.Jittered),
//	    pool.WithRateLimit(50, 10), // 50 tasks/sec, burst of 10
//	)
//
// Retries never requeue a task; the Task Queue only ever sees a task
// once.
//
// # CPU Affinity
//
// WithCPUAffinity pins each Fixed-mode worker to a dedicated OS thread
// and core where the platform supports it. It has no effect in Elastic
// mode, where the worker count is not stable enough to pin meaningfully.
//
// # Diagnostics
//
// Hooks is the pool's entire observability surface: OnWorkerSpawn,
// OnWorkerReclaim, OnTaskRejected, OnTaskStart, and OnTaskEnd fire
// synchronously from whichever goroutine triggered them, so callers
// wanting metrics or logging wire those hooks to their own tooling
// rather than the pool importing one directly.
//
// # Shutdown Semantics
//
// Shutdown is idempotent and stops the pool in two phases: it signals
// every running Worker to exit once its current task (if any) finishes,
// waiting up to the given timeout, then cancels whatever tasks were still
// sitting in the queue, never dequeued. Their Result Slots report
// ErrCancelled.
package pool
