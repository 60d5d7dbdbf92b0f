package hookx

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/sparkx"
)

// JobType is the job type carrying one webhook batch.
const JobType = "sparkpost.event_batch"

const (
	// BatchIDHeader carries the id SparkPost assigns to a batch. Redelivered
	// batches keep their id.
	BatchIDHeader = "X-MessageSystems-Batch-ID"

	// TokenHeader carries the webhook's auth token when token auth is set up.
	TokenHeader = "X-MessageSystems-Webhook-Token"
)

// BatchPayload is the job payload for JobType.
type BatchPayload struct {
	BatchID    string          `json:"batch_id"`
	ReceivedAt time.Time       `json:"received_at"`
	Body       json.RawMessage `json:"body"`
}

// StoredEvent is an event as persisted by an EventStore.
type StoredEvent struct {
	EventID        string          `json:"event_id"`
	BatchID        string          `json:"batch_id"`
	Class          string          `json:"class"`
	Type           string          `json:"type"`
	RcptTo         string          `json:"rcpt_to"`
	MessageID      string          `json:"message_id,omitempty"`
	TransmissionID string          `json:"transmission_id,omitempty"`
	CampaignID     string          `json:"campaign_id,omitempty"`
	Timestamp      string          `json:"timestamp,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	Payload        json.RawMessage `json:"payload"`
	ReceivedAt     time.Time       `json:"received_at"`
}

// NewStoredEvent flattens ev for storage. Events without an event id get
// one derived from the batch id and their position, so redelivery of the
// same batch stays idempotent.
func NewStoredEvent(batchID string, index int, ev sparkx.MessageEvent, receivedAt time.Time) (StoredEvent, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return StoredEvent{}, err
	}

	id := ev.EventID
	if id == "" {
		id = fmt.Sprintf("%s:%d", batchID, index)
	}

	return StoredEvent{
		EventID:        id,
		BatchID:        batchID,
		Class:          ev.Class,
		Type:           ev.Type,
		RcptTo:         ev.RcptTo,
		MessageID:      ev.MessageID,
		TransmissionID: ev.TransmissionID,
		CampaignID:     ev.CampaignID,
		Timestamp:      string(ev.Timestamp),
		Tags:           ev.RcptTags,
		Payload:        payload,
		ReceivedAt:     receivedAt,
	}, nil
}
