package pool

import (
	"errors"
	"testing"
)

func TestResultSlot_Get(t *testing.T) {
	t.Run("blocks until setValue", func(t *testing.T) {
		s := newResultSlot()
		done := make(chan struct{})

		go func() {
			v, err := s.Get()
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			got, _ := As[int](v)
			if got != 3 {
				t.Errorf("expected 3, got %d", got)
			}
			close(done)
		}()

		s.setValue(NewValue(3), nil)
		<-done
	})

	t.Run("setValue twice panics", func(t *testing.T) {
		s := newResultSlot()
		s.setValue(NewValue(1), nil)

		defer func() {
			if recover() == nil {
				t.Error("expected a panic on the second setValue call")
			}
		}()
		s.setValue(NewValue(2), nil)
	})
}

func TestResultSlot_Cancel(t *testing.T) {
	s := newResultSlot()
	s.cancel()

	v, err := s.Get()
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if !v.IsZero() {
		t.Error("expected an empty AnyValue for a cancelled slot")
	}
	if s.Valid() {
		t.Error("expected Valid to be false for a cancelled slot")
	}
}

func TestResultSlot_Rejected(t *testing.T) {
	s := rejectedResultSlot(ErrQueueFull)

	_, err := s.Get()
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	if s.Valid() {
		t.Error("expected Valid to be false for a rejected slot")
	}
}
