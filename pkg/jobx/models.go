package jobx

import (
	"encoding/json"
	"time"
)

// DefaultQueue is used when a job names no queue.
const DefaultQueue = "sparkpost"

// JobStatus represents the current state of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusActive    JobStatus = "active"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// Job represents a unit of work to be enqueued.
type Job struct {
	Type    string          `json:"type"`
	Queue   string          `json:"queue"`
	Payload json.RawMessage `json:"payload"`

	// Key makes enqueueing idempotent: a second job with the same queue and
	// key resolves to the first job's id. Webhook batch ids go here.
	Key string `json:"key,omitempty"`

	// MaxRetries is the maximum number of retry attempts. Default is 3.
	MaxRetries int `json:"max_retries"`
}

// JobInfo is the full representation of a job stored in the backend.
type JobInfo struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Queue      string          `json:"queue"`
	Key        string          `json:"key,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	Status     JobStatus       `json:"status"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	MaxRetries int             `json:"max_retries"`
	Attempts   int             `json:"attempts"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewInfo builds the stored form of a freshly enqueued job.
func NewInfo(id string, job Job, now time.Time) JobInfo {
	return JobInfo{
		ID:         id,
		Type:       job.Type,
		Queue:      job.Queue,
		Key:        job.Key,
		Payload:    job.Payload,
		Status:     JobStatusPending,
		MaxRetries: job.MaxRetries,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ShouldRetry reports whether another attempt is allowed.
func (j *JobInfo) ShouldRetry() bool {
	return j.Attempts < j.MaxRetries
}

// JobOption configures NewJob.
type JobOption func(*Job)

// OnQueue routes the job to a named queue.
func OnQueue(queue string) JobOption {
	return func(j *Job) { j.Queue = queue }
}

// WithKey sets the idempotency key.
func WithKey(key string) JobOption {
	return func(j *Job) { j.Key = key }
}

// WithMaxRetries overrides the retry budget.
func WithMaxRetries(n int) JobOption {
	return func(j *Job) { j.MaxRetries = n }
}

// NewJob encodes payload as JSON and builds a job of the given type.
func NewJob(jobType string, payload any, opts ...JobOption) (Job, error) {
	if jobType == "" {
		return Job{}, jobxErrors.New(ErrInvalidJob).WithDetail("reason", "empty job type")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Job{}, jobxErrors.NewWithCause(ErrInvalidJob, err).WithDetail("type", jobType)
	}
	job := Job{Type: jobType, Payload: data}
	for _, opt := range opts {
		opt(&job)
	}
	return job, nil
}

// Decode unmarshals the payload of a job.
func Decode[T any](info *JobInfo) (T, error) {
	var v T
	if err := json.Unmarshal(info.Payload, &v); err != nil {
		return v, jobxErrors.NewWithCause(ErrInvalidJob, err).
			WithDetail("job_id", info.ID).
			WithDetail("type", info.Type)
	}
	return v, nil
}
