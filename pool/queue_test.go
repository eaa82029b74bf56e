package pool

import (
	"errors"
	"testing"
	"time"
)

func TestTaskQueue_PushWithTimeout(t *testing.T) {
	t.Run("succeeds while room remains", func(t *testing.T) {
		q := newTaskQueue(1)
		err := q.pushWithTimeout(&envelope{}, time.Now().Add(time.Second))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := q.len(); got != 1 {
			t.Errorf("expected len 1, got %d", got)
		}
	})

	t.Run("times out once full", func(t *testing.T) {
		q := newTaskQueue(1)
		if err := q.pushWithTimeout(&envelope{}, time.Now().Add(time.Second)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err := q.pushWithTimeout(&envelope{}, time.Now().Add(20*time.Millisecond))
		if !errors.Is(err, ErrQueueFull) {
			t.Fatalf("expected ErrQueueFull, got %v", err)
		}
	})
}

func TestTaskQueue_Drain(t *testing.T) {
	q := newTaskQueue(4)
	for range 3 {
		if err := q.pushWithTimeout(&envelope{}, time.Now().Add(time.Second)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	leftover := q.drain()
	if len(leftover) != 3 {
		t.Fatalf("expected 3 leftover envelopes, got %d", len(leftover))
	}
	if q.len() != 0 {
		t.Errorf("expected queue empty after drain, got len %d", q.len())
	}
}
