package pool

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/devraj-k/taskpool/internal/backoff"
)

// Mode selects how the Supervisor sizes its worker set.
type Mode int

const (
	// Fixed keeps the worker count equal to the initial count for the
	// pool's lifetime.
	Fixed Mode = iota
	// Elastic allows the Supervisor to grow the worker count on demand
	// and lets idle workers self-retire after a prolonged idle period.
	Elastic
)

const (
	defaultQueueCapacity = 1024
	defaultIdleTimeout   = 60 * time.Second
	defaultPollInterval  = time.Second
	submitDeadline       = time.Second
)

// WorkerPoolOption configures a Supervisor before Start is called.
type WorkerPoolOption func(*config)

type config struct {
	mode          Mode
	queueCapacity int
	maxWorkers    int // 0 means "compute a default from initial at Start"
	idleTimeout   time.Duration

	maxAttempts  int
	backoffType  backoff.Type
	initialDelay time.Duration
	maxDelay     time.Duration
	jitterFactor float64

	rateLimiter *rate.Limiter
	cpuAffinity bool

	hooks Hooks
}

func newConfig() *config {
	return &config{
		mode:          Fixed,
		queueCapacity: defaultQueueCapacity,
		idleTimeout:   defaultIdleTimeout,
		maxAttempts:   1,
		backoffType:   backoff.Exponential,
		initialDelay:  100 * time.Millisecond,
		maxDelay:      5 * time.Second,
		jitterFactor:  0.1,
	}
}

// Hooks are optional diagnostic callbacks. This is the pool's entire
// observability surface; there is no logging framework underneath the
// core.
type Hooks struct {
	OnWorkerSpawn   func(id int64)
	OnWorkerReclaim func(id int64)
	OnTaskRejected  func()
	OnTaskStart     func()
	OnTaskEnd       func(err error)
}

// WithMode sets Fixed or Elastic sizing. Ignored once Start has run.
func WithMode(m Mode) WorkerPoolOption {
	return func(c *config) { c.mode = m }
}

// WithQueueCapacity sets the bounded queue's capacity. Ignored once
// Start has run.
func WithQueueCapacity(n int) WorkerPoolOption {
	return func(c *config) {
		if n > 0 {
			c.queueCapacity = n
		}
	}
}

// WithMaxWorkers caps the Elastic worker count. Ignored in Fixed mode
// and once Start has run.
func WithMaxWorkers(n int) WorkerPoolOption {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// WithIdleTimeout overrides the default 60s idle-reclaim threshold used
// in Elastic mode.
func WithIdleTimeout(d time.Duration) WorkerPoolOption {
	return func(c *config) {
		if d > 0 {
			c.idleTimeout = d
		}
	}
}

// WithRetryPolicy enables per-task retries: maxAttempts total attempts,
// with exponential backoff starting at initialDelay. Retries happen
// entirely inside one Worker's execution of one envelope; they never
// touch the Task Queue.
func WithRetryPolicy(maxAttempts int, initialDelay time.Duration) WorkerPoolOption {
	return func(c *config) {
		if maxAttempts > 0 {
			c.maxAttempts = maxAttempts
		}
		if initialDelay > 0 {
			c.initialDelay = initialDelay
		}
	}
}

// WithBackoffType selects the retry backoff algorithm. Has no effect
// unless WithRetryPolicy is also set.
func WithBackoffType(t backoff.Type) WorkerPoolOption {
	return func(c *config) { c.backoffType = t }
}

// WithRateLimit throttles task dispatch to tasksPerSecond with the given
// burst allowance, shared across every Worker in the pool.
func WithRateLimit(tasksPerSecond float64, burst int) WorkerPoolOption {
	return func(c *config) {
		if tasksPerSecond > 0 && burst > 0 {
			c.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithCPUAffinity pins each Fixed-mode worker's OS thread to a dedicated
// core. Ignored in Elastic mode, where the worker count fluctuates.
func WithCPUAffinity() WorkerPoolOption {
	return func(c *config) { c.cpuAffinity = true }
}

// WithHooks installs diagnostic callbacks.
func WithHooks(h Hooks) WorkerPoolOption {
	return func(c *config) { c.hooks = h }
}
