package backoff

import "time"

// Type selects the retry backoff algorithm.
type Type int

const (
	// Exponential uses simple exponential backoff (default).
	Exponential Type = iota
	// Jittered adds random jitter to prevent thundering herd.
	Jittered
	// Decorrelated uses AWS-style decorrelated jitter.
	Decorrelated
)

// New creates a backoff Strategy for the given algorithm.
func New(t Type, initialDelay, maxDelay time.Duration, jitterFactor float64) Strategy {
	switch t {
	case Jittered:
		return newJitteredBackoff(initialDelay, maxDelay, jitterFactor)
	case Decorrelated:
		return newDecorrelatedJitterBackoff(initialDelay, maxDelay)
	default:
		return newExponentialBackoff(initialDelay, maxDelay)
	}
}
