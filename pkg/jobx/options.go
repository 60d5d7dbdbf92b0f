package jobx

import "time"

// WorkerOptions configures the job processing client.
type WorkerOptions struct {
	Queues          []string
	Concurrency     int
	PollInterval    time.Duration
	ShutdownTimeout time.Duration
	DequeueTimeout  time.Duration
	RetryDelay      time.Duration
	MaxRetryDelay   time.Duration
	DefaultRetries  int

	// Retryable decides whether a handler error deserves another attempt.
	// Errors wrapped with Permanent are never retried.
	Retryable func(error) bool
}

func defaultWorkerOptions() WorkerOptions {
	return WorkerOptions{
		Queues:          []string{DefaultQueue},
		Concurrency:     4,
		PollInterval:    time.Second,
		ShutdownTimeout: 30 * time.Second,
		DequeueTimeout:  5 * time.Second,
		RetryDelay:      10 * time.Second,
		MaxRetryDelay:   10 * time.Minute,
		DefaultRetries:  3,
	}
}

// retryDelay doubles RetryDelay per finished attempt, capped at MaxRetryDelay.
func (o WorkerOptions) retryDelay(attempts int) time.Duration {
	d := o.RetryDelay
	for i := 1; i < attempts; i++ {
		d *= 2
		if o.MaxRetryDelay > 0 && d >= o.MaxRetryDelay {
			return o.MaxRetryDelay
		}
	}
	return d
}

// WorkerOption is a functional option for configuring the client.
type WorkerOption func(*WorkerOptions)

// WithQueues sets the queues to process.
func WithQueues(queues ...string) WorkerOption {
	return func(o *WorkerOptions) {
		if len(queues) > 0 {
			o.Queues = queues
		}
	}
}

// WithConcurrency sets the number of worker goroutines.
func WithConcurrency(n int) WorkerOption {
	return func(o *WorkerOptions) {
		if n > 0 {
			o.Concurrency = n
		}
	}
}

// WithPollInterval sets the interval between dequeue attempts when idle.
func WithPollInterval(d time.Duration) WorkerOption {
	return func(o *WorkerOptions) {
		o.PollInterval = d
	}
}

// WithShutdownTimeout sets the maximum time to wait for workers to finish on shutdown.
func WithShutdownTimeout(d time.Duration) WorkerOption {
	return func(o *WorkerOptions) {
		o.ShutdownTimeout = d
	}
}

// WithDequeueTimeout sets the timeout passed to the blocking dequeue call.
func WithDequeueTimeout(d time.Duration) WorkerOption {
	return func(o *WorkerOptions) {
		o.DequeueTimeout = d
	}
}

// WithRetryDelay sets the first retry delay and its cap.
func WithRetryDelay(initial, max time.Duration) WorkerOption {
	return func(o *WorkerOptions) {
		o.RetryDelay = initial
		o.MaxRetryDelay = max
	}
}

// WithDefaultRetries sets the retry budget of jobs enqueued without one.
func WithDefaultRetries(n int) WorkerOption {
	return func(o *WorkerOptions) {
		if n >= 0 {
			o.DefaultRetries = n
		}
	}
}

// WithRetryable installs the retry predicate.
func WithRetryable(fn func(error) bool) WorkerOption {
	return func(o *WorkerOptions) {
		o.Retryable = fn
	}
}
