package jobx

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryQueue is an in-process Queue. It backs tests and single-process
// deployments that run without redis.
type MemoryQueue struct {
	mu        sync.Mutex
	jobs      map[string]*JobInfo
	ready     map[string][]string
	scheduled map[string]time.Time
	keys      map[string]string
	notify    chan struct{}
	now       func() time.Time
}

// NewMemoryQueue returns an empty in-memory queue.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		jobs:      make(map[string]*JobInfo),
		ready:     make(map[string][]string),
		scheduled: make(map[string]time.Time),
		keys:      make(map[string]string),
		notify:    make(chan struct{}, 1),
		now:       time.Now,
	}
}

var _ Queue = (*MemoryQueue)(nil)

func dedupKey(queue, key string) string { return queue + "\x00" + key }

// Enqueue adds a job to the ready list of its queue.
func (q *MemoryQueue) Enqueue(ctx context.Context, job Job) (string, error) {
	return q.add(job, 0)
}

// EnqueueDelayed parks a job until delay elapses.
func (q *MemoryQueue) EnqueueDelayed(ctx context.Context, job Job, delay time.Duration) (string, error) {
	return q.add(job, delay)
}

func (q *MemoryQueue) add(job Job, delay time.Duration) (string, error) {
	if job.Queue == "" {
		job.Queue = DefaultQueue
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if job.Key != "" {
		if id, ok := q.keys[dedupKey(job.Queue, job.Key)]; ok {
			return id, nil
		}
	}

	id := uuid.NewString()
	info := NewInfo(id, job, q.now())
	q.jobs[id] = &info
	if job.Key != "" {
		q.keys[dedupKey(job.Queue, job.Key)] = id
	}

	if delay > 0 {
		q.scheduled[id] = q.now().Add(delay)
		return id, nil
	}
	q.push(job.Queue, id)
	return id, nil
}

func (q *MemoryQueue) push(queue, id string) {
	q.ready[queue] = append(q.ready[queue], id)
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// GetJob returns a copy of the stored job.
func (q *MemoryQueue) GetJob(ctx context.Context, jobID string) (*JobInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	info, ok := q.jobs[jobID]
	if !ok {
		return nil, jobxErrors.New(ErrJobNotFound).WithDetail("job_id", jobID)
	}
	cp := *info
	return &cp, nil
}

// Dequeue pops the first ready job across queues in order, waiting up to
// timeout for one to arrive.
func (q *MemoryQueue) Dequeue(ctx context.Context, queues []string, timeout time.Duration) (*JobInfo, error) {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		if job := q.pop(queues); job != nil {
			return job, nil
		}
		if timeout <= 0 {
			return nil, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return nil, nil
		case <-q.notify:
		}
	}
}

func (q *MemoryQueue) pop(queues []string) *JobInfo {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, name := range queues {
		ids := q.ready[name]
		if len(ids) == 0 {
			continue
		}
		id := ids[0]
		q.ready[name] = ids[1:]

		info := q.jobs[id]
		info.Status = JobStatusActive
		info.Attempts++
		info.UpdatedAt = q.now()
		cp := *info
		return &cp
	}
	return nil
}

// Complete marks a job completed.
func (q *MemoryQueue) Complete(ctx context.Context, jobID string, result []byte) error {
	return q.update(jobID, func(info *JobInfo) {
		info.Status = JobStatusCompleted
		info.Result = result
		info.Error = ""
	})
}

// Fail marks a job failed for good.
func (q *MemoryQueue) Fail(ctx context.Context, jobID string, errMsg string) error {
	return q.update(jobID, func(info *JobInfo) {
		info.Status = JobStatusFailed
		info.Error = errMsg
	})
}

// Retry records the error and schedules the job again after delay.
func (q *MemoryQueue) Retry(ctx context.Context, jobID string, errMsg string, delay time.Duration) error {
	return q.update(jobID, func(info *JobInfo) {
		info.Status = JobStatusRetrying
		info.Error = errMsg
		q.scheduled[jobID] = q.now().Add(delay)
	})
}

// PromoteScheduled moves due jobs of the given queues to their ready lists.
func (q *MemoryQueue) PromoteScheduled(ctx context.Context, queues []string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	var due []string
	for id, at := range q.scheduled {
		if at.After(now) || !slices.Contains(queues, q.jobs[id].Queue) {
			continue
		}
		due = append(due, id)
	}
	// Oldest first keeps promotion order stable.
	slices.SortFunc(due, func(a, b string) int {
		return q.scheduled[a].Compare(q.scheduled[b])
	})
	for _, id := range due {
		delete(q.scheduled, id)
		info := q.jobs[id]
		info.Status = JobStatusPending
		info.UpdatedAt = now
		q.push(info.Queue, id)
	}
	return nil
}

// Len returns the number of stored jobs in each status.
func (q *MemoryQueue) Len() map[JobStatus]int {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make(map[JobStatus]int)
	for _, info := range q.jobs {
		out[info.Status]++
	}
	return out
}

func (q *MemoryQueue) update(jobID string, fn func(*JobInfo)) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	info, ok := q.jobs[jobID]
	if !ok {
		return jobxErrors.New(ErrJobNotFound).WithDetail("job_id", jobID)
	}
	fn(info)
	info.UpdatedAt = q.now()
	return nil
}
