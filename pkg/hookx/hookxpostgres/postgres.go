package hookxpostgres

import (
	"context"
	"errors"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/errx"
	"github.com/Abraxas-365/sparkx/pkg/hookx"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Schema creates the events table. Migrate applies it.
const Schema = `
CREATE TABLE IF NOT EXISTS sparkpost_events (
	event_id        TEXT PRIMARY KEY,
	batch_id        TEXT NOT NULL,
	class           TEXT NOT NULL,
	type            TEXT NOT NULL,
	rcpt_to         TEXT NOT NULL DEFAULT '',
	message_id      TEXT NOT NULL DEFAULT '',
	transmission_id TEXT NOT NULL DEFAULT '',
	campaign_id     TEXT NOT NULL DEFAULT '',
	event_timestamp TEXT NOT NULL DEFAULT '',
	rcpt_tags       TEXT[] NOT NULL DEFAULT '{}',
	payload         JSONB NOT NULL,
	received_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS sparkpost_events_rcpt_to_idx
	ON sparkpost_events (rcpt_to, received_at DESC);
`

const insertEvent = `
	INSERT INTO sparkpost_events (
		event_id, batch_id, class, type, rcpt_to, message_id, transmission_id,
		campaign_id, event_timestamp, rcpt_tags, payload, received_at
	) VALUES (
		:event_id, :batch_id, :class, :type, :rcpt_to, :message_id, :transmission_id,
		:campaign_id, :event_timestamp, :rcpt_tags, :payload, :received_at
	)
	ON CONFLICT (event_id) DO NOTHING`

const selectByRecipient = `
	SELECT event_id, batch_id, class, type, rcpt_to, message_id, transmission_id,
		campaign_id, event_timestamp, rcpt_tags, payload, received_at
	FROM sparkpost_events
	WHERE rcpt_to = $1
	ORDER BY received_at DESC, event_id DESC
	LIMIT $2`

// undefinedTable is the postgres error code for a missing relation.
const undefinedTable = "42P01"

// Store is the PostgreSQL EventStore.
type Store struct {
	db *sqlx.DB
}

var _ hookx.EventStore = (*Store)(nil)

// NewStore creates a store over db.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the table and index when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return errx.Wrap(err, "failed to migrate events table", errx.TypeInternal)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveEvents inserts events in one transaction. Event ids already stored
// are skipped.
func (s *Store) SaveEvents(ctx context.Context, events []hookx.StoredEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errx.Wrap(err, "failed to begin transaction", errx.TypeInternal)
	}
	defer tx.Rollback()

	saved := 0
	for _, ev := range events {
		result, err := tx.NamedExecContext(ctx, insertEvent, toPersistence(ev))
		if err != nil {
			return 0, wrap(err, "failed to insert event").WithDetail("event_id", ev.EventID)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, errx.Wrap(err, "failed to read affected rows", errx.TypeInternal)
		}
		saved += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, errx.Wrap(err, "failed to commit events", errx.TypeInternal)
	}
	return saved, nil
}

// ListByRecipient returns the newest events for rcpt.
func (s *Store) ListByRecipient(ctx context.Context, rcpt string, limit int) ([]hookx.StoredEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, selectByRecipient, rcpt, limit); err != nil {
		return nil, wrap(err, "failed to list events").WithDetail("rcpt_to", rcpt)
	}

	out := make([]hookx.StoredEvent, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func wrap(err error, msg string) *errx.Error {
	e := errx.Wrap(err, msg, errx.TypeInternal)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
		e.WithDetail("hint", "run migrations")
	}
	return e
}

// ============================================================================
// Persistence model
// ============================================================================

type eventRow struct {
	EventID        string         `db:"event_id"`
	BatchID        string         `db:"batch_id"`
	Class          string         `db:"class"`
	Type           string         `db:"type"`
	RcptTo         string         `db:"rcpt_to"`
	MessageID      string         `db:"message_id"`
	TransmissionID string         `db:"transmission_id"`
	CampaignID     string         `db:"campaign_id"`
	Timestamp      string         `db:"event_timestamp"`
	RcptTags       pq.StringArray `db:"rcpt_tags"`
	Payload        []byte         `db:"payload"`
	ReceivedAt     time.Time      `db:"received_at"`
}

func toPersistence(ev hookx.StoredEvent) eventRow {
	tags := pq.StringArray(ev.Tags)
	if tags == nil {
		tags = pq.StringArray{}
	}
	return eventRow{
		EventID:        ev.EventID,
		BatchID:        ev.BatchID,
		Class:          ev.Class,
		Type:           ev.Type,
		RcptTo:         ev.RcptTo,
		MessageID:      ev.MessageID,
		TransmissionID: ev.TransmissionID,
		CampaignID:     ev.CampaignID,
		Timestamp:      ev.Timestamp,
		RcptTags:       tags,
		Payload:        ev.Payload,
		ReceivedAt:     ev.ReceivedAt,
	}
}

func (r eventRow) toDomain() hookx.StoredEvent {
	return hookx.StoredEvent{
		EventID:        r.EventID,
		BatchID:        r.BatchID,
		Class:          r.Class,
		Type:           r.Type,
		RcptTo:         r.RcptTo,
		MessageID:      r.MessageID,
		TransmissionID: r.TransmissionID,
		CampaignID:     r.CampaignID,
		Timestamp:      r.Timestamp,
		Tags:           []string(r.RcptTags),
		Payload:        r.Payload,
		ReceivedAt:     r.ReceivedAt,
	}
}
