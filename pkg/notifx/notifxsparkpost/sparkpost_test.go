package notifxsparkpost

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/sparkx/pkg/notifx"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransmission_Mapping(t *testing.T) {
	p := NewSparkPostProvider(nil, "noreply@example.com", "Example")
	msg := notifx.EmailMessage{
		To:          []string{"a@example.com", "b@example.com"},
		CC:          []string{"c@example.com"},
		BCC:         []string{"d@example.com"},
		Subject:     "Report",
		HTMLBody:    "<b>hi</b>",
		Attachments: []notifx.Attachment{{Filename: "r.txt", ContentType: "text/plain", Data: []byte("hi")}},
	}
	o := notifx.ApplyOptions([]notifx.Option{
		notifx.WithCampaign("weekly"),
		notifx.WithTags("report"),
		notifx.WithSandbox(),
	})

	tx := p.Transmission(msg, o)

	assert.Equal(t, "weekly", tx.CampaignID)
	require.Len(t, tx.Recipients.Inline, 4)
	assert.Equal(t, "", tx.Recipients.Inline[0].Address.HeaderTo)
	assert.Equal(t, "a@example.com,b@example.com", tx.Recipients.Inline[2].Address.HeaderTo)
	assert.Equal(t, "a@example.com,b@example.com", tx.Recipients.Inline[3].Address.HeaderTo)
	assert.Equal(t, []string{"report"}, tx.Recipients.Inline[3].Tags)

	require.NotNil(t, tx.Content.Inline)
	assert.Equal(t, sparkx.Address{Email: "noreply@example.com", Name: "Example"}, tx.Content.Inline.From)
	assert.Equal(t, "c@example.com", tx.Content.Inline.Headers["CC"])
	assert.Equal(t, "aGk=", tx.Content.Inline.Attachments[0].Data)
	require.NotNil(t, tx.Options)
	assert.True(t, *tx.Options.Sandbox)
	assert.Nil(t, tx.Options.OpenTracking)
}

func TestSendEmail_ThroughClient(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/transmissions", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":{"id":"11668787484950529","total_accepted_recipients":1,"total_rejected_recipients":0}}`))
	}))
	defer srv.Close()

	client, err := sparkx.New("key", sparkx.WithOrigin(srv.URL))
	require.NoError(t, err)
	p := NewSparkPostProvider(client.Transmissions, "noreply@example.com", "")

	res, err := p.SendEmail(context.Background(), notifx.EmailMessage{
		From:     "ops@example.com",
		To:       []string{"a@example.com"},
		Subject:  "Hi",
		TextBody: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "11668787484950529", res.MessageID)
	assert.Equal(t, 1, res.Accepted)
	assert.Equal(t, ProviderName, res.Provider)

	content := body["content"].(map[string]any)
	assert.Equal(t, "ops@example.com", content["from"])
	assert.Equal(t, []any{map[string]any{"address": "a@example.com"}}, body["recipients"])
}

func TestSendEmail_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"message":"invalid data format/type","code":"1300"}]}`))
	}))
	defer srv.Close()

	client, err := sparkx.New("key", sparkx.WithOrigin(srv.URL))
	require.NoError(t, err)
	p := NewSparkPostProvider(client.Transmissions, "noreply@example.com", "")

	_, err = p.SendEmail(context.Background(), notifx.EmailMessage{To: []string{"a@example.com"}, Subject: "x", TextBody: "y"})
	require.Error(t, err)
	assert.True(t, notifx.ErrSendFailed.Is(err))
	assert.ErrorIs(t, err, sparkx.ErrService)

	apiErr, ok := sparkx.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
}
