package pool

import (
	"errors"
	"testing"
	"time"
)

func TestFuture_Get(t *testing.T) {
	t.Run("successful result", func(t *testing.T) {
		slot := newResultSlot()
		f := newFuture[string](slot)

		go func() {
			time.Sleep(20 * time.Millisecond)
			slot.setValue(NewValue("hello"), nil)
		}()

		v, err := f.Get()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != "hello" {
			t.Errorf("expected %q, got %q", "hello", v)
		}
	})

	t.Run("type mismatch", func(t *testing.T) {
		slot := newResultSlot()
		f := newFuture[string](slot)

		slot.setValue(NewValue(42), nil)

		_, err := f.Get()
		if !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("expected ErrTypeMismatch, got %v", err)
		}
	})

	t.Run("propagates task error without extracting", func(t *testing.T) {
		slot := newResultSlot()
		f := newFuture[int](slot)

		wantErr := errors.New("task failed")
		slot.setValue(AnyValue{}, wantErr)

		_, err := f.Get()
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
	})
}

func TestFuture_GetWithTimeout(t *testing.T) {
	t.Run("result before timeout", func(t *testing.T) {
		slot := newResultSlot()
		f := newFuture[int](slot)

		go func() {
			time.Sleep(20 * time.Millisecond)
			slot.setValue(NewValue(7), nil)
		}()

		v, err := f.GetWithTimeout(500 * time.Millisecond)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 7 {
			t.Errorf("expected 7, got %d", v)
		}
	})

	t.Run("timeout before result", func(t *testing.T) {
		slot := newResultSlot()
		f := newFuture[int](slot)

		_, err := f.GetWithTimeout(20 * time.Millisecond)
		if !errors.Is(err, ErrShutdownTimeout) {
			t.Fatalf("expected ErrShutdownTimeout, got %v", err)
		}
	})
}

func TestFuture_IsReady(t *testing.T) {
	t.Run("not ready initially", func(t *testing.T) {
		slot := newResultSlot()
		f := newFuture[int](slot)

		if f.IsReady() {
			t.Error("expected IsReady to be false")
		}
	})

	t.Run("ready after setValue", func(t *testing.T) {
		slot := newResultSlot()
		f := newFuture[int](slot)

		slot.setValue(NewValue(1), nil)

		if !f.IsReady() {
			t.Error("expected IsReady to be true")
		}
	})
}
