package pool

import (
	"context"
	"sync"
	"time"

	"github.com/devraj-k/taskpool/internal/affinity"
	"github.com/devraj-k/taskpool/internal/backoff"
)

// worker is a long-running execution context that repeatedly pulls
// envelopes from the Supervisor's queue and executes them. It owns a
// stable identity and an idle timer; the idle timer only matters in
// Elastic mode.
type worker struct {
	id   int64
	sup  *Supervisor
	mu   sync.Mutex
	idle time.Time
}

func newWorker(id int64, sup *Supervisor) *worker {
	return &worker{id: id, sup: sup, idle: time.Now()}
}

func (w *worker) lastActive() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.idle
}

func (w *worker) touch() {
	w.mu.Lock()
	w.idle = time.Now()
	w.mu.Unlock()
}

// run is the worker's state machine: Waiting-for-task -> Executing,
// looping until shutdown or (Elastic only) idle reclamation.
func (w *worker) run() {
	if w.sup.cfg.cpuAffinity && w.sup.cfg.mode == Fixed {
		unpin := affinity.Pin(w.id)
		defer unpin()
	}

	if w.sup.cfg.mode == Elastic {
		w.runElastic()
		return
	}
	w.runFixed()
}

func (w *worker) runFixed() {
	q := w.sup.queue
	for {
		select {
		case env, ok := <-q.ch:
			if !ok {
				return
			}
			w.execute(env)
		case <-w.sup.shutdownCh:
			return
		}
	}
}

func (w *worker) runElastic() {
	q := w.sup.queue
	ticker := time.NewTicker(defaultPollInterval)
	defer ticker.Stop()

	for {
		select {
		case env, ok := <-q.ch:
			if !ok {
				return
			}
			w.execute(env)

		case <-w.sup.shutdownCh:
			return

		case <-ticker.C:
			// Double-checked: re-test the reclaim predicate under the
			// Supervisor's registry lock, since idle/current may have
			// changed since the timer fired.
			if time.Since(w.lastActive()) > w.sup.cfg.idleTimeout && w.sup.tryReclaim(w.id) {
				return
			}
		}
	}
}

// execute runs one envelope outside the registry lock, bracketed by the
// idle-count bookkeeping the spec requires: decremented before release
// of the lock that guards it, incremented again once the task completes,
// with last-active refreshed only on completion.
func (w *worker) execute(env *envelope) {
	w.sup.markBusy()
	defer func() {
		w.touch()
		w.sup.markIdle()
	}()

	if h := w.sup.cfg.hooks.OnTaskStart; h != nil {
		h()
	}

	if w.sup.cfg.rateLimiter != nil {
		_ = w.sup.cfg.rateLimiter.Wait(context.Background())
	}

	err := w.executeWithRetry(env)

	if h := w.sup.cfg.hooks.OnTaskEnd; h != nil {
		h(err)
	}
}

// executeWithRetry runs env.task.Run with the configured retry policy.
// Retries are entirely local to this one Worker's handling of this one
// envelope — they never requeue and the Task Queue never sees them.
func (w *worker) executeWithRetry(env *envelope) error {
	cfg := w.sup.cfg
	maxAttempts := max(cfg.maxAttempts, 1)

	var strat backoff.Strategy
	if maxAttempts > 1 {
		strat = backoff.New(cfg.backoffType, cfg.initialDelay, cfg.maxDelay, cfg.jitterFactor)
	}

	var value AnyValue
	var err error
	for attempt := range maxAttempts {
		if attempt > 0 {
			time.Sleep(strat.NextDelay(attempt-1, err))
		}

		value, err = env.runRecovered()
		if err == nil {
			break
		}
	}

	if env.slot != nil {
		env.slot.setValue(value, err)
	}
	return err
}
