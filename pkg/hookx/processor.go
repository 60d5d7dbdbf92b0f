package hookx

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/jobx"
	"github.com/Abraxas-365/sparkx/pkg/logx"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
)

// Processor stores the events of queued webhook batches.
type Processor struct {
	store   EventStore
	logger  *logx.Logger
	metrics *Metrics
}

// NewProcessor creates a processor saving into store.
func NewProcessor(store EventStore, logger *logx.Logger) *Processor {
	if logger == nil {
		logger = logx.GetDefaultLogger()
	}
	return &Processor{store: store, logger: logger}
}

// WithMetrics counts stored and duplicate events on m.
func (p *Processor) WithMetrics(m *Metrics) *Processor {
	p.metrics = m
	return p
}

// Register binds the processor to JobType on client.
func (p *Processor) Register(client *jobx.Client) {
	client.Register(JobType, jobx.Handle(p.Process))
}

// Process parses one batch and saves its events. A batch that no longer
// parses fails permanently; store errors are retried.
func (p *Processor) Process(ctx context.Context, batch BatchPayload, job *jobx.JobInfo) error {
	events, err := sparkx.ParseEventBatch(batch.Body)
	if err != nil {
		return jobx.Permanent(hookErrors.NewWithCause(ErrBadBatch, err).WithDetail("batch_id", batch.BatchID))
	}

	stored := make([]StoredEvent, 0, len(events))
	for i, ev := range events {
		se, err := NewStoredEvent(batch.BatchID, i, ev, batch.ReceivedAt)
		if err != nil {
			return jobx.Permanent(hookErrors.NewWithCause(ErrBadBatch, err).WithDetail("batch_id", batch.BatchID))
		}
		stored = append(stored, se)
	}

	saved, err := p.store.SaveEvents(ctx, stored)
	if err != nil {
		return hookErrors.NewWithCause(ErrStore, err).WithDetail("batch_id", batch.BatchID)
	}

	p.metrics.stored(saved, len(stored))
	p.logger.WithFields(logx.Fields{
		"batch_id": batch.BatchID,
		"job_id":   job.ID,
		"events":   len(stored),
		"saved":    saved,
	}).Info("webhook batch stored")
	return nil
}
