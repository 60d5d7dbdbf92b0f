package jobx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/logx"
)

// HandlerFunc processes a job. Return nil on success, an error to trigger
// a retry, or an error wrapped with Permanent to fail the job for good.
type HandlerFunc func(ctx context.Context, job *JobInfo) error

// Handle adapts a typed handler. Payloads that do not decode fail permanently.
func Handle[T any](fn func(ctx context.Context, payload T, job *JobInfo) error) HandlerFunc {
	return func(ctx context.Context, job *JobInfo) error {
		payload, err := Decode[T](job)
		if err != nil {
			return Permanent(err)
		}
		return fn(ctx, payload, job)
	}
}

// JobEnqueuer enqueues jobs for processing.
type JobEnqueuer interface {
	Enqueue(ctx context.Context, job Job) (string, error)
	EnqueueDelayed(ctx context.Context, job Job, delay time.Duration) (string, error)
}

// JobStatusReader reads job status.
type JobStatusReader interface {
	GetJob(ctx context.Context, jobID string) (*JobInfo, error)
}

// JobProcessor provides backend operations for the worker loop.
type JobProcessor interface {
	// Dequeue returns the next ready job marked active with its attempt
	// counted, or nil when none arrived within timeout.
	Dequeue(ctx context.Context, queues []string, timeout time.Duration) (*JobInfo, error)
	Complete(ctx context.Context, jobID string, result []byte) error
	Fail(ctx context.Context, jobID string, errMsg string) error
	Retry(ctx context.Context, jobID string, errMsg string, delay time.Duration) error
	PromoteScheduled(ctx context.Context, queues []string) error
}

// Queue combines all backend operations.
type Queue interface {
	JobEnqueuer
	JobStatusReader
	JobProcessor
}

// Client is the main entry point for enqueuing and processing jobs.
type Client struct {
	queue    Queue
	opts     WorkerOptions
	handlers map[string]HandlerFunc
	mu       sync.RWMutex
	running  bool
}

// NewClient creates a new job processing client.
func NewClient(queue Queue, options ...WorkerOption) *Client {
	opts := defaultWorkerOptions()
	for _, o := range options {
		o(&opts)
	}
	return &Client{
		queue:    queue,
		opts:     opts,
		handlers: make(map[string]HandlerFunc),
	}
}

// Register adds a handler for a given job type.
func (c *Client) Register(jobType string, handler HandlerFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[jobType] = handler
}

func (c *Client) withDefaults(job Job) (Job, error) {
	if job.Type == "" {
		return job, jobxErrors.New(ErrInvalidJob).WithDetail("reason", "empty job type")
	}
	if job.Queue == "" {
		job.Queue = DefaultQueue
	}
	if job.MaxRetries == 0 {
		job.MaxRetries = c.opts.DefaultRetries
	}
	return job, nil
}

// Enqueue enqueues a job for immediate processing.
func (c *Client) Enqueue(ctx context.Context, job Job) (string, error) {
	job, err := c.withDefaults(job)
	if err != nil {
		return "", err
	}
	return c.queue.Enqueue(ctx, job)
}

// EnqueueDelayed enqueues a job with a delay before it becomes available.
func (c *Client) EnqueueDelayed(ctx context.Context, job Job, delay time.Duration) (string, error) {
	job, err := c.withDefaults(job)
	if err != nil {
		return "", err
	}
	return c.queue.EnqueueDelayed(ctx, job, delay)
}

// GetJob returns the current state of a job.
func (c *Client) GetJob(ctx context.Context, jobID string) (*JobInfo, error) {
	return c.queue.GetJob(ctx, jobID)
}

// Start begins processing jobs. It blocks until ctx is cancelled.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return jobxErrors.New(ErrAlreadyRunning)
	}
	c.running = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	logx.WithFields(logx.Fields{
		"workers": c.opts.Concurrency,
		"queues":  c.opts.Queues,
	}).Info("jobx: starting workers")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.schedulerLoop(ctx)
	}()

	for i := range c.opts.Concurrency {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c.workerLoop(ctx, id)
		}(i)
	}

	<-ctx.Done()
	logx.Info("jobx: shutting down workers")

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logx.Info("jobx: all workers stopped")
	case <-time.After(c.opts.ShutdownTimeout):
		logx.Warn("jobx: shutdown timed out, some jobs may not have completed")
	}

	return nil
}

// RunOnce promotes due jobs and processes at most one ready job. It reports
// whether a job was processed.
func (c *Client) RunOnce(ctx context.Context) (bool, error) {
	if err := c.queue.PromoteScheduled(ctx, c.opts.Queues); err != nil {
		return false, err
	}
	job, err := c.queue.Dequeue(ctx, c.opts.Queues, 0)
	if err != nil || job == nil {
		return false, err
	}
	// Detached so a cancelled caller cannot leave the job half recorded.
	c.processJob(context.WithoutCancel(ctx), job)
	return true, nil
}

func (c *Client) schedulerLoop(ctx context.Context) {
	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.queue.PromoteScheduled(ctx, c.opts.Queues); err != nil {
				if ctx.Err() != nil {
					return
				}
				logx.WithError(err).Warn("jobx: failed to promote scheduled jobs")
			}
		}
	}
}

func (c *Client) workerLoop(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := c.queue.Dequeue(ctx, c.opts.Queues, c.opts.DequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logx.WithError(err).Warnf("jobx: worker %d dequeue error", id)
			time.Sleep(c.opts.PollInterval)
			continue
		}
		if job == nil {
			continue
		}

		c.processJob(context.WithoutCancel(ctx), job)
	}
}

func (c *Client) processJob(ctx context.Context, job *JobInfo) {
	log := logx.WithFields(logx.Fields{
		"job_id":  job.ID,
		"type":    job.Type,
		"attempt": job.Attempts,
	})

	c.mu.RLock()
	handler, ok := c.handlers[job.Type]
	c.mu.RUnlock()

	if !ok {
		log.Warn("jobx: no handler registered")
		if err := c.queue.Fail(ctx, job.ID, ErrNoHandler.Message); err != nil {
			log.WithError(err).Error("jobx: failed to mark job as failed")
		}
		return
	}

	err := c.run(ctx, handler, job)
	if err == nil {
		if err := c.queue.Complete(ctx, job.ID, nil); err != nil {
			log.WithError(err).Error("jobx: failed to complete job")
		}
		return
	}

	if c.retryable(err) && job.ShouldRetry() {
		delay := c.opts.retryDelay(job.Attempts)
		log.WithError(err).Warnf("jobx: job failed, retrying in %s", delay)
		if rErr := c.queue.Retry(ctx, job.ID, err.Error(), delay); rErr != nil {
			log.WithError(rErr).Error("jobx: failed to schedule retry")
		}
		return
	}

	log.WithError(err).Error("jobx: job failed")
	if fErr := c.queue.Fail(ctx, job.ID, err.Error()); fErr != nil {
		log.WithError(fErr).Error("jobx: failed to mark job as failed")
	}
}

func (c *Client) run(ctx context.Context, handler HandlerFunc, job *JobInfo) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Permanent(fmt.Errorf("handler panic: %v", r))
		}
	}()
	return handler(ctx, job)
}

func (c *Client) retryable(err error) bool {
	if IsPermanent(err) {
		return false
	}
	if c.opts.Retryable != nil {
		return c.opts.Retryable(err)
	}
	return true
}
