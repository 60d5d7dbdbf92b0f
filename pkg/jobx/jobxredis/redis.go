package jobxredis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/jobx"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key the queue writes.
const DefaultPrefix = "sparkx:jobs"

// RedisQueue implements jobx.Queue backed by Redis.
type RedisQueue struct {
	rdb      redis.Cmdable
	prefix   string
	dedupTTL time.Duration
	jobTTL   time.Duration
}

var _ jobx.Queue = (*RedisQueue)(nil)

// Option configures a RedisQueue.
type Option func(*RedisQueue)

// WithPrefix changes the key namespace.
func WithPrefix(prefix string) Option {
	return func(q *RedisQueue) {
		if prefix != "" {
			q.prefix = prefix
		}
	}
}

// WithDedupTTL sets how long an idempotency key keeps resolving to its job.
func WithDedupTTL(ttl time.Duration) Option {
	return func(q *RedisQueue) { q.dedupTTL = ttl }
}

// WithJobTTL expires finished job records after ttl. Zero keeps them.
func WithJobTTL(ttl time.Duration) Option {
	return func(q *RedisQueue) { q.jobTTL = ttl }
}

// NewRedisQueue creates a new Redis-backed queue.
func NewRedisQueue(rdb redis.Cmdable, opts ...Option) *RedisQueue {
	q := &RedisQueue{
		rdb:      rdb,
		prefix:   DefaultPrefix,
		dedupTTL: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *RedisQueue) queueKey(name string) string     { return q.prefix + ":queue:" + name }
func (q *RedisQueue) scheduledKey(name string) string { return q.prefix + ":scheduled:" + name }
func (q *RedisQueue) jobKey(id string) string         { return q.prefix + ":job:" + id }
func (q *RedisQueue) dedupKey(queue, key string) string {
	return q.prefix + ":key:" + queue + ":" + key
}

// Enqueue adds a job to the ready queue immediately.
func (q *RedisQueue) Enqueue(ctx context.Context, job jobx.Job) (string, error) {
	return q.add(ctx, job, 0)
}

// EnqueueDelayed adds a job to the scheduled set with a future execution time.
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, job jobx.Job, delay time.Duration) (string, error) {
	return q.add(ctx, job, delay)
}

func (q *RedisQueue) add(ctx context.Context, job jobx.Job, delay time.Duration) (string, error) {
	if job.Queue == "" {
		job.Queue = jobx.DefaultQueue
	}
	id := uuid.NewString()

	if job.Key != "" {
		existing, claimed, err := q.claim(ctx, job, id)
		if err != nil {
			return "", err
		}
		if !claimed {
			return existing, nil
		}
	}

	now := time.Now().UTC()
	data, err := json.Marshal(jobx.NewInfo(id, job, now))
	if err != nil {
		return "", redisErrors.NewWithCause(ErrMarshal, err)
	}

	pipe := q.rdb.TxPipeline()
	pipe.Set(ctx, q.jobKey(id), data, 0)
	if delay > 0 {
		pipe.ZAdd(ctx, q.scheduledKey(job.Queue), redis.Z{Score: score(now.Add(delay)), Member: id})
	} else {
		pipe.LPush(ctx, q.queueKey(job.Queue), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", redisErrors.NewWithCause(ErrEnqueue, err).
			WithDetail("queue", job.Queue).
			WithDetail("delay", delay.String())
	}

	return id, nil
}

// claim reserves the job's idempotency key for id. When another job holds
// the key its id is returned with claimed false.
func (q *RedisQueue) claim(ctx context.Context, job jobx.Job, id string) (string, bool, error) {
	key := q.dedupKey(job.Queue, job.Key)
	ok, err := q.rdb.SetNX(ctx, key, id, q.dedupTTL).Result()
	if err != nil {
		return "", false, redisErrors.NewWithCause(ErrEnqueue, err).WithDetail("key", job.Key)
	}
	if ok {
		return id, true, nil
	}
	existing, err := q.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false, redisErrors.NewWithCause(ErrEnqueue, err).WithDetail("key", job.Key)
	}
	return existing, false, nil
}

// GetJob retrieves job info by ID.
func (q *RedisQueue) GetJob(ctx context.Context, jobID string) (*jobx.JobInfo, error) {
	data, err := q.rdb.Get(ctx, q.jobKey(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, redisErrors.New(ErrNotFound).WithDetail("job_id", jobID)
		}
		return nil, redisErrors.NewWithCause(ErrGetJob, err).WithDetail("job_id", jobID)
	}

	var info jobx.JobInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, redisErrors.NewWithCause(ErrUnmarshal, err).WithDetail("job_id", jobID)
	}

	return &info, nil
}

// Dequeue pops the next job from the given queues. A positive timeout blocks
// until a job arrives or it expires; otherwise the call never blocks.
func (q *RedisQueue) Dequeue(ctx context.Context, queues []string, timeout time.Duration) (*jobx.JobInfo, error) {
	jobID, err := q.pop(ctx, queues, timeout)
	if err != nil || jobID == "" {
		return nil, err
	}

	info, err := q.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	info.Status = jobx.JobStatusActive
	info.Attempts++
	if err := q.save(ctx, info, 0); err != nil {
		return nil, redisErrors.NewWithCause(ErrDequeue, err).WithDetail("job_id", jobID)
	}

	return info, nil
}

func (q *RedisQueue) pop(ctx context.Context, queues []string, timeout time.Duration) (string, error) {
	if timeout > 0 {
		keys := make([]string, len(queues))
		for i, name := range queues {
			keys[i] = q.queueKey(name)
		}
		result, err := q.rdb.BRPop(ctx, timeout, keys...).Result()
		switch {
		case errors.Is(err, redis.Nil):
			return "", nil
		case err != nil && ctx.Err() != nil:
			return "", nil
		case err != nil:
			return "", redisErrors.NewWithCause(ErrDequeue, err)
		}
		// result[0] = key, result[1] = job ID
		return result[1], nil
	}

	for _, name := range queues {
		id, err := q.rdb.RPop(ctx, q.queueKey(name)).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return "", redisErrors.NewWithCause(ErrDequeue, err).WithDetail("queue", name)
		}
		return id, nil
	}
	return "", nil
}

// Complete marks a job as successfully completed.
func (q *RedisQueue) Complete(ctx context.Context, jobID string, result []byte) error {
	info, err := q.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	info.Status = jobx.JobStatusCompleted
	info.Result = result
	info.Error = ""
	if err := q.save(ctx, info, q.jobTTL); err != nil {
		return redisErrors.NewWithCause(ErrComplete, err).WithDetail("job_id", jobID)
	}
	return nil
}

// Fail marks a job as failed for good.
func (q *RedisQueue) Fail(ctx context.Context, jobID string, errMsg string) error {
	info, err := q.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	info.Status = jobx.JobStatusFailed
	info.Error = errMsg
	if err := q.save(ctx, info, q.jobTTL); err != nil {
		return redisErrors.NewWithCause(ErrFail, err).WithDetail("job_id", jobID)
	}
	return nil
}

// Retry records the error and parks the job in the scheduled set for delay.
func (q *RedisQueue) Retry(ctx context.Context, jobID string, errMsg string, delay time.Duration) error {
	info, err := q.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	info.Status = jobx.JobStatusRetrying
	info.Error = errMsg
	info.UpdatedAt = now

	data, err := json.Marshal(info)
	if err != nil {
		return redisErrors.NewWithCause(ErrMarshal, err).WithDetail("job_id", jobID)
	}

	pipe := q.rdb.TxPipeline()
	pipe.Set(ctx, q.jobKey(jobID), data, 0)
	pipe.ZAdd(ctx, q.scheduledKey(info.Queue), redis.Z{Score: score(now.Add(delay)), Member: jobID})
	if _, err := pipe.Exec(ctx); err != nil {
		return redisErrors.NewWithCause(ErrRetry, err).WithDetail("job_id", jobID)
	}
	return nil
}

func (q *RedisQueue) save(ctx context.Context, info *jobx.JobInfo, ttl time.Duration) error {
	info.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(info)
	if err != nil {
		return redisErrors.NewWithCause(ErrMarshal, err).WithDetail("job_id", info.ID)
	}
	return q.rdb.Set(ctx, q.jobKey(info.ID), data, ttl).Err()
}

// promoteScript moves due ids from the scheduled set to the ready list atomically.
var promoteScript = redis.NewScript(`
local scheduled_key = KEYS[1]
local queue_key = KEYS[2]
local now = tonumber(ARGV[1])
local ids = redis.call('ZRANGEBYSCORE', scheduled_key, '-inf', now)
if #ids > 0 then
    for _, id in ipairs(ids) do
        redis.call('LPUSH', queue_key, id)
    end
    redis.call('ZREMRANGEBYSCORE', scheduled_key, '-inf', now)
end
return #ids
`)

// PromoteScheduled moves jobs whose scheduled time has passed to the ready queue.
func (q *RedisQueue) PromoteScheduled(ctx context.Context, queues []string) error {
	now := strconv.FormatInt(time.Now().UTC().UnixMilli(), 10)

	for _, name := range queues {
		err := promoteScript.Run(ctx, q.rdb,
			[]string{q.scheduledKey(name), q.queueKey(name)},
			now,
		).Err()

		if err != nil && !errors.Is(err, redis.Nil) {
			return redisErrors.NewWithCause(ErrPromote, err).WithDetail("queue", name)
		}
	}

	return nil
}

// QueueStats counts the jobs waiting in one queue.
type QueueStats struct {
	Queue     string `json:"queue"`
	Ready     int64  `json:"ready"`
	Scheduled int64  `json:"scheduled"`
}

// Stats reports ready and scheduled counts per queue.
func (q *RedisQueue) Stats(ctx context.Context, queues ...string) ([]QueueStats, error) {
	pipe := q.rdb.Pipeline()
	ready := make([]*redis.IntCmd, len(queues))
	scheduled := make([]*redis.IntCmd, len(queues))
	for i, name := range queues {
		ready[i] = pipe.LLen(ctx, q.queueKey(name))
		scheduled[i] = pipe.ZCard(ctx, q.scheduledKey(name))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, redisErrors.NewWithCause(ErrStats, err)
	}

	out := make([]QueueStats, len(queues))
	for i, name := range queues {
		out[i] = QueueStats{Queue: name, Ready: ready[i].Val(), Scheduled: scheduled[i].Val()}
	}
	return out, nil
}

// score is the sorted-set score of t, in milliseconds.
func score(t time.Time) float64 {
	return float64(t.UnixMilli())
}
