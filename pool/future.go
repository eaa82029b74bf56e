package pool

import "time"

// Future is the typed, generic view onto a ResultSlot (Variant B). It is
// the primary submission API: SubmitFuture wraps a Supervisor's Submit
// and extracts the type-witnessed result through As[R].
type Future[R any] struct {
	slot *ResultSlot
}

func newFuture[R any](slot *ResultSlot) *Future[R] {
	return &Future[R]{slot: slot}
}

// Get blocks until the task completes and returns its typed result. If
// the stored value does not hold an R, Get reports ErrTypeMismatch.
func (f *Future[R]) Get() (R, error) {
	value, err := f.slot.Get()
	if err != nil {
		var zero R
		return zero, err
	}
	return As[R](value)
}

// GetWithTimeout blocks until the task completes or d elapses, whichever
// comes first, reporting ErrShutdownTimeout on timeout.
func (f *Future[R]) GetWithTimeout(d time.Duration) (R, error) {
	var zero R
	select {
	case <-f.slot.ready:
		if f.slot.err != nil {
			return zero, f.slot.err
		}
		return As[R](f.slot.value)
	case <-time.After(d):
		return zero, ErrShutdownTimeout
	}
}

// IsReady reports whether the underlying task has completed, without
// blocking.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.slot.ready:
		return true
	default:
		return false
	}
}
