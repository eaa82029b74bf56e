package pool

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is returned by As when the witness type does not match
// the type the AnyValue was constructed with.
var ErrTypeMismatch = errors.New("pool: type mismatch")

// AnyValue is an opaque, single-typed, move-only container used to carry
// a task's result from a Worker to the submitter without the pool ever
// needing to know the concrete return type. It is the sole interchange
// medium between the Task contract and the Result Slot.
//
// A zero AnyValue is "empty" and is what Get returns for a rejected or
// fire-and-forget Result.
type AnyValue struct {
	box *valueBox
}

type valueBox struct {
	v    any
	kind string
}

// NewValue wraps v in an AnyValue, recording its concrete type for later
// mismatch diagnostics.
func NewValue(v any) AnyValue {
	return AnyValue{box: &valueBox{v: v, kind: fmt.Sprintf("%T", v)}}
}

// IsZero reports whether this is the empty/default AnyValue (no value was
// ever stored, e.g. a rejected submission or an errored task).
func (v AnyValue) IsZero() bool {
	return v.box == nil
}

// As extracts the value stored in v using T as a type witness. It fails
// with ErrTypeMismatch if v does not hold a T, and returns the zero T for
// an empty AnyValue without error (an empty value degrades to "default").
func As[T any](v AnyValue) (T, error) {
	var zero T
	if v.IsZero() {
		return zero, nil
	}

	t, ok := v.box.v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: stored %s, requested %T", ErrTypeMismatch, v.box.kind, zero)
	}
	return t, nil
}
