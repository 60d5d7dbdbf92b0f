package hookxpostgres

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/hookx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPersistenceRoundTrip(t *testing.T) {
	ev := hookx.StoredEvent{
		EventID:    "ev-1",
		BatchID:    "batch-1",
		Class:      "message_event",
		Type:       "bounce",
		RcptTo:     "a@example.com",
		CampaignID: "spring",
		Timestamp:  "1454442600",
		Tags:       []string{"vip"},
		Payload:    json.RawMessage(`{"type":"bounce"}`),
		ReceivedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	row := toPersistence(ev)
	assert.Equal(t, pq.StringArray{"vip"}, row.RcptTags)
	assert.Equal(t, ev, row.toDomain())
}

func TestPersistence_NilTags(t *testing.T) {
	row := toPersistence(hookx.StoredEvent{EventID: "x"})
	assert.NotNil(t, row.RcptTags)
	assert.Empty(t, row.RcptTags)
}

func TestWrap_MissingTableHint(t *testing.T) {
	e := wrap(&pq.Error{Code: undefinedTable}, "failed to insert event")
	assert.Equal(t, "run migrations", e.Details["hint"])

	e = wrap(errors.New("boom"), "failed to insert event")
	assert.NotContains(t, e.Details, "hint")
}

func TestQueriesNameEveryColumn(t *testing.T) {
	for _, col := range []string{"event_id", "rcpt_tags", "payload", "received_at", "event_timestamp"} {
		assert.Contains(t, Schema, col)
		assert.Contains(t, insertEvent, ":"+col)
		assert.Contains(t, selectByRecipient, col)
	}
	assert.True(t, strings.Contains(insertEvent, "ON CONFLICT (event_id) DO NOTHING"))
}
