package jobx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type batch struct {
	BatchID string `json:"batch_id"`
	Count   int    `json:"count"`
}

func newTestClient(opts ...WorkerOption) (*Client, *MemoryQueue) {
	q := NewMemoryQueue()
	opts = append([]WorkerOption{WithRetryDelay(0, 0)}, opts...)
	return NewClient(q, opts...), q
}

func TestRunOnce_Success(t *testing.T) {
	c, _ := newTestClient()
	ctx := context.Background()

	var got batch
	c.Register("event_batch", Handle(func(ctx context.Context, p batch, job *JobInfo) error {
		got = p
		return nil
	}))

	job, err := NewJob("event_batch", batch{BatchID: "b1", Count: 3})
	require.NoError(t, err)
	id, err := c.Enqueue(ctx, job)
	require.NoError(t, err)

	ran, err := c.RunOnce(ctx)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, batch{BatchID: "b1", Count: 3}, got)

	info, err := c.GetJob(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, JobStatusCompleted, info.Status)
	assert.Equal(t, DefaultQueue, info.Queue)
	assert.Equal(t, 1, info.Attempts)
	assert.Equal(t, 3, info.MaxRetries)

	ran, err = c.RunOnce(ctx)
	require.NoError(t, err)
	assert.False(t, ran)
}

func TestRunOnce_RetriesThenFails(t *testing.T) {
	c, _ := newTestClient()
	ctx := context.Background()

	calls := 0
	c.Register("flaky", func(ctx context.Context, job *JobInfo) error {
		calls++
		return errors.New("upstream unavailable")
	})

	job, err := NewJob("flaky", nil, WithMaxRetries(2))
	require.NoError(t, err)
	id, err := c.Enqueue(ctx, job)
	require.NoError(t, err)

	_, err = c.RunOnce(ctx)
	require.NoError(t, err)
	info, _ := c.GetJob(ctx, id)
	assert.Equal(t, JobStatusRetrying, info.Status)
	assert.Equal(t, "upstream unavailable", info.Error)

	_, err = c.RunOnce(ctx)
	require.NoError(t, err)
	info, _ = c.GetJob(ctx, id)
	assert.Equal(t, JobStatusFailed, info.Status)
	assert.Equal(t, 2, info.Attempts)
	assert.Equal(t, 2, calls)
}

func TestRunOnce_PermanentErrorSkipsRetry(t *testing.T) {
	c, _ := newTestClient()
	ctx := context.Background()

	c.Register("bad", func(ctx context.Context, job *JobInfo) error {
		return Permanent(errors.New("malformed"))
	})
	id, err := c.Enqueue(ctx, Job{Type: "bad"})
	require.NoError(t, err)

	_, err = c.RunOnce(ctx)
	require.NoError(t, err)
	info, _ := c.GetJob(ctx, id)
	assert.Equal(t, JobStatusFailed, info.Status)
	assert.Equal(t, 1, info.Attempts)
}

func TestRunOnce_RetryablePredicate(t *testing.T) {
	sentinel := errors.New("bad request")
	c, _ := newTestClient(WithRetryable(func(err error) bool {
		return !errors.Is(err, sentinel)
	}))
	ctx := context.Background()

	c.Register("send", func(ctx context.Context, job *JobInfo) error {
		return sentinel
	})
	id, _ := c.Enqueue(ctx, Job{Type: "send"})

	_, err := c.RunOnce(ctx)
	require.NoError(t, err)
	info, _ := c.GetJob(ctx, id)
	assert.Equal(t, JobStatusFailed, info.Status)
}

func TestRunOnce_DecodeFailureIsPermanent(t *testing.T) {
	c, _ := newTestClient()
	ctx := context.Background()

	c.Register("typed", Handle(func(ctx context.Context, p batch, job *JobInfo) error {
		t.Fatal("handler must not run")
		return nil
	}))
	id, _ := c.Enqueue(ctx, Job{Type: "typed", Payload: []byte(`"not an object"`)})

	_, err := c.RunOnce(ctx)
	require.NoError(t, err)
	info, _ := c.GetJob(ctx, id)
	assert.Equal(t, JobStatusFailed, info.Status)
	assert.Equal(t, 1, info.Attempts)
}

func TestRunOnce_PanicIsRecovered(t *testing.T) {
	c, _ := newTestClient()
	ctx := context.Background()

	c.Register("boom", func(ctx context.Context, job *JobInfo) error {
		panic("nil map")
	})
	id, _ := c.Enqueue(ctx, Job{Type: "boom"})

	_, err := c.RunOnce(ctx)
	require.NoError(t, err)
	info, _ := c.GetJob(ctx, id)
	assert.Equal(t, JobStatusFailed, info.Status)
	assert.Contains(t, info.Error, "nil map")
}

func TestRunOnce_NoHandler(t *testing.T) {
	c, _ := newTestClient()
	ctx := context.Background()

	id, _ := c.Enqueue(ctx, Job{Type: "unknown"})
	_, err := c.RunOnce(ctx)
	require.NoError(t, err)

	info, _ := c.GetJob(ctx, id)
	assert.Equal(t, JobStatusFailed, info.Status)
	assert.Equal(t, ErrNoHandler.Message, info.Error)
}

func TestEnqueue_Validation(t *testing.T) {
	c, _ := newTestClient()

	_, err := c.Enqueue(context.Background(), Job{})
	require.Error(t, err)
	assert.True(t, ErrInvalidJob.Is(err))

	_, err = NewJob("", nil)
	assert.True(t, ErrInvalidJob.Is(err))

	_, err = NewJob("x", make(chan int))
	require.Error(t, err)
	e, ok := errx.As(err)
	require.True(t, ok)
	assert.Equal(t, "x", e.Details["type"])
}

func TestEnqueue_KeyDedupe(t *testing.T) {
	c, q := newTestClient()
	ctx := context.Background()

	first, err := c.Enqueue(ctx, Job{Type: "event_batch", Key: "batch-1"})
	require.NoError(t, err)
	second, err := c.Enqueue(ctx, Job{Type: "event_batch", Key: "batch-1"})
	require.NoError(t, err)
	other, err := c.Enqueue(ctx, Job{Type: "event_batch", Key: "batch-1", Queue: "other"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Equal(t, 2, q.Len()[JobStatusPending])
}

func TestEnqueueDelayed(t *testing.T) {
	c, q := newTestClient()
	ctx := context.Background()
	now := time.Now()
	q.now = func() time.Time { return now }

	c.Register("later", func(ctx context.Context, job *JobInfo) error { return nil })
	id, err := c.EnqueueDelayed(ctx, Job{Type: "later"}, time.Minute)
	require.NoError(t, err)

	ran, err := c.RunOnce(ctx)
	require.NoError(t, err)
	assert.False(t, ran)

	now = now.Add(2 * time.Minute)
	ran, err = c.RunOnce(ctx)
	require.NoError(t, err)
	assert.True(t, ran)

	info, _ := c.GetJob(ctx, id)
	assert.Equal(t, JobStatusCompleted, info.Status)
}

func TestGetJob_NotFound(t *testing.T) {
	c, _ := newTestClient()
	_, err := c.GetJob(context.Background(), "missing")
	assert.True(t, ErrJobNotFound.Is(err))
}

func TestStart_ProcessesUntilCancelled(t *testing.T) {
	c, _ := newTestClient(WithConcurrency(2), WithPollInterval(10*time.Millisecond), WithDequeueTimeout(20*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan string, 1)
	c.Register("ping", func(ctx context.Context, job *JobInfo) error {
		done <- job.ID
		return nil
	})
	id, err := c.Enqueue(ctx, Job{Type: "ping"})
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- c.Start(ctx) }()

	select {
	case got := <-done:
		assert.Equal(t, id, got)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return")
	}
}

func TestRetryDelay(t *testing.T) {
	o := defaultWorkerOptions()
	o.RetryDelay = time.Second
	o.MaxRetryDelay = 5 * time.Second

	assert.Equal(t, time.Second, o.retryDelay(1))
	assert.Equal(t, 2*time.Second, o.retryDelay(2))
	assert.Equal(t, 4*time.Second, o.retryDelay(3))
	assert.Equal(t, 5*time.Second, o.retryDelay(4))
	assert.Equal(t, 5*time.Second, o.retryDelay(10))
}

func TestPermanent(t *testing.T) {
	base := errors.New("x")
	assert.Nil(t, Permanent(nil))
	assert.True(t, IsPermanent(Permanent(base)))
	assert.ErrorIs(t, Permanent(base), base)
	assert.False(t, IsPermanent(base))
}
