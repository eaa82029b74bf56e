package pool

import "sync"

// ResultSlot is the single-producer/multi-reader rendezvous carrying a
// task's outcome from a Worker to whoever is awaiting it. It is signalled
// exactly once in its lifetime: either with a value after the Worker
// finishes executing the linked task, or immediately and invalidly if the
// submission was rejected at the queue boundary or cancelled by shutdown.
// Readiness is published by closing ready, so Get, GetWithTimeout, and
// IsReady can all observe it without racing to consume a single permit.
//
// A ResultSlot must not be copied once linked to an envelope; share it by
// pointer, as Submit does.
type ResultSlot struct {
	ready chan struct{}
	once  sync.Once
	value AnyValue
	err   error
	valid bool
}

func newResultSlot() *ResultSlot {
	return &ResultSlot{ready: make(chan struct{})}
}

// rejectedResultSlot returns an already-signalled, invalid slot for a
// submission that never entered the queue. Get on it returns the empty
// AnyValue and err immediately, as spec'd.
func rejectedResultSlot(err error) *ResultSlot {
	s := newResultSlot()
	s.err = err
	close(s.ready)
	return s
}

// setValue is called exactly once, by the Worker that executed the linked
// task. It deposits the outcome and publishes readiness. Calling it twice
// is a caller-contract violation and panics, matching the "undefined if
// called twice" rule in the design.
func (s *ResultSlot) setValue(v AnyValue, err error) {
	signalled := false
	s.once.Do(func() {
		s.value = v
		s.err = err
		s.valid = true
		close(s.ready)
		signalled = true
	})
	if !signalled {
		panic("pool: ResultSlot.setValue called more than once")
	}
}

// cancel marks the slot as abandoned by shutdown: ready immediately, no
// value, ErrCancelled as the error. Used only for tasks that were still
// queued (never dequeued) when Shutdown ran.
func (s *ResultSlot) cancel() {
	s.once.Do(func() {
		s.err = ErrCancelled
		s.valid = false
		close(s.ready)
	})
}

// Get blocks until the slot is signalled, then returns the task's value
// and error. A rejected or cancelled slot returns immediately with an
// empty AnyValue.
func (s *ResultSlot) Get() (AnyValue, error) {
	<-s.ready
	return s.value, s.err
}

// Valid reports whether the submission that produced this slot was
// actually accepted into the queue and not later cancelled by shutdown.
// A false value means Get will return the empty AnyValue immediately —
// the submission was rejected or cancelled.
func (s *ResultSlot) Valid() bool {
	return s.valid
}
