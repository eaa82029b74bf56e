package pool

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/devraj-k/taskpool/internal/affinity"
)

// Supervisor is the Pool Supervisor: it owns the worker registry, the
// Task Queue, and the lifecycle transitions (Start, Submit, Shutdown).
// A zero-value Supervisor is not usable; construct one with New.
type Supervisor struct {
	cfg *config

	queue *taskQueue

	mu         sync.Mutex
	workers    map[int64]*worker
	current    int
	idle       int
	initial    int
	maxWorkers int

	nextID int64

	eg         *errgroup.Group
	shutdownCh chan struct{}

	started  atomic.Bool
	shutdown atomic.Bool
}

// New constructs a Supervisor with the given options applied. The pool
// does not spawn any workers until Start is called.
func New(opts ...WorkerPoolOption) *Supervisor {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Supervisor{
		cfg:        cfg,
		workers:    make(map[int64]*worker),
		shutdownCh: make(chan struct{}),
	}
}

// SetMode sets Fixed or Elastic sizing. Permitted only before Start;
// silently ignored afterward, with no error.
func (s *Supervisor) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.Load() {
		return
	}
	s.cfg.mode = m
}

// SetQueueCapacity sets the bounded queue's capacity. Permitted only
// before Start; silently ignored afterward.
func (s *Supervisor) SetQueueCapacity(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.Load() || n <= 0 {
		return
	}
	s.cfg.queueCapacity = n
}

// SetMaxWorkers caps the Elastic worker count. Permitted only before
// Start and only in Elastic mode; silently ignored otherwise.
func (s *Supervisor) SetMaxWorkers(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.Load() || n <= 0 || s.cfg.mode != Elastic {
		return
	}
	s.cfg.maxWorkers = n
}

// Start spawns the initial worker count and begins dispatch. initial
// defaults to the number of hardware execution contexts when <= 0.
// Calling Start twice returns ErrAlreadyStarted.
func (s *Supervisor) Start(initial int) error {
	if initial <= 0 {
		initial = affinity.NumCPU()
	}
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	s.mu.Lock()
	s.queue = newTaskQueue(s.cfg.queueCapacity)
	s.eg = &errgroup.Group{}
	s.initial = initial
	s.maxWorkers = s.cfg.maxWorkers
	if s.maxWorkers <= 0 {
		s.maxWorkers = initial * 4
	}
	for range initial {
		s.spawnLocked()
	}
	s.mu.Unlock()

	return nil
}

// spawnLocked creates and launches one worker under the Supervisor's
// errgroup, so Shutdown can wait on every worker's exit. The worker's
// function always returns nil — task panics are recovered inside run and
// never escape it — and Shutdown does not inspect the group's error.
// Callers must hold s.mu.
func (s *Supervisor) spawnLocked() *worker {
	id := atomic.AddInt64(&s.nextID, 1)
	w := newWorker(id, s)
	s.workers[id] = w
	s.current++
	s.idle++

	s.eg.Go(func() error {
		w.run()
		return nil
	})

	if h := s.cfg.hooks.OnWorkerSpawn; h != nil {
		h(id)
	}
	return w
}

// markBusy and markIdle adjust the idle count around task execution; the
// registry lock is held only for the bookkeeping itself, never for the
// duration of task execution.
func (s *Supervisor) markBusy() {
	s.mu.Lock()
	s.idle--
	s.mu.Unlock()
}

func (s *Supervisor) markIdle() {
	s.mu.Lock()
	s.idle++
	s.mu.Unlock()
}

// tryReclaim removes worker id from the registry if current exceeds the
// initial count, reporting whether the reclaim happened. Called by an
// Elastic-mode worker considering self-retirement.
func (s *Supervisor) tryReclaim(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current <= s.initial {
		return false
	}
	if _, ok := s.workers[id]; !ok {
		return false
	}

	delete(s.workers, id)
	s.current--
	s.idle--

	if h := s.cfg.hooks.OnWorkerReclaim; h != nil {
		h(id)
	}
	return true
}

// maybeScaleUp spawns one additional worker when the backlog signal —
// queue length exceeding the count of currently idle workers — indicates
// the pool cannot keep up, capped at maxWorkers. At most one worker is
// spawned per Submit call.
func (s *Supervisor) maybeScaleUp() {
	if s.cfg.mode != Elastic {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.len() > s.idle && s.current < s.maxWorkers {
		s.spawnLocked()
	}
}

// Submit enqueues task and returns its ResultSlot (Variant A). If the
// pool has not been started, has been shut down, or the queue stays full
// past the submit deadline, Submit returns a slot whose Get immediately
// reports the corresponding error and never blocks.
func (s *Supervisor) Submit(task Task) *ResultSlot {
	if !s.started.Load() {
		return s.reject(ErrNotStarted)
	}
	if s.shutdown.Load() {
		return s.reject(ErrShutdown)
	}

	slot := newResultSlot()
	slot.valid = true
	env := &envelope{task: task, slot: slot}

	s.maybeScaleUp()

	deadline := time.Now().Add(submitDeadline)
	if err := s.queue.pushWithTimeout(env, deadline); err != nil {
		return s.reject(err)
	}
	return slot
}

// SubmitFuture enqueues task and returns a typed Future (Variant B), the
// primary submission API.
func SubmitFuture[R any](s *Supervisor, task Task) *Future[R] {
	return newFuture[R](s.Submit(task))
}

func (s *Supervisor) reject(err error) *ResultSlot {
	if h := s.cfg.hooks.OnTaskRejected; h != nil {
		h()
	}
	return rejectedResultSlot(err)
}

// Shutdown stops accepting new tasks, waits up to timeout for in-flight
// and already-queued tasks' workers to exit, then cancels whatever
// remains in the queue. Shutdown is idempotent: calling it more than
// once is a no-op returning nil after the first call completes.
func (s *Supervisor) Shutdown(timeout time.Duration) error {
	if !s.started.Load() {
		return ErrNotStarted
	}
	if !s.shutdown.CompareAndSwap(false, true) {
		return nil
	}
	close(s.shutdownCh)

	done := make(chan struct{})
	go func() {
		s.eg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-time.After(timeout):
		err = ErrShutdownTimeout
	}

	for _, env := range s.queue.drain() {
		if env.slot != nil {
			env.slot.cancel()
		}
	}

	s.mu.Lock()
	s.workers = make(map[int64]*worker)
	s.current = 0
	s.idle = 0
	s.mu.Unlock()

	return err
}

// CurrentWorkers reports the live worker count.
func (s *Supervisor) CurrentWorkers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// IdleWorkers reports the count of workers not presently executing a task.
func (s *Supervisor) IdleWorkers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idle
}

// QueueLength reports the number of envelopes presently queued.
func (s *Supervisor) QueueLength() int {
	if s.queue == nil {
		return 0
	}
	return s.queue.len()
}
