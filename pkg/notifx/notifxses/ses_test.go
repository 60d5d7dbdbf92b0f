package notifxses

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"

	"github.com/Abraxas-365/sparkx/pkg/notifx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	plain *ses.SendEmailInput
	raw   *ses.SendRawEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.plain = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("plain-1")}, nil
}

func (f *fakeSES) SendRawEmail(_ context.Context, in *ses.SendRawEmailInput, _ ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	f.raw = in
	return &ses.SendRawEmailOutput{MessageId: aws.String("raw-1")}, nil
}

func TestSendEmail_Plain(t *testing.T) {
	api := &fakeSES{}
	p := NewSESProvider(api, "noreply@example.com")

	res, err := p.SendEmail(context.Background(), notifx.EmailMessage{
		To:       []string{"a@example.com"},
		Subject:  "Hi",
		HTMLBody: "<p>hi</p>",
		ReplyTo:  "support@example.com",
	}, notifx.WithConfigSet("tracking"), notifx.WithCampaign("launch"))
	require.NoError(t, err)
	assert.Equal(t, "plain-1", res.MessageID)

	require.NotNil(t, api.plain)
	assert.Equal(t, "noreply@example.com", aws.ToString(api.plain.Source))
	assert.Equal(t, "tracking", aws.ToString(api.plain.ConfigurationSetName))
	assert.Equal(t, []string{"support@example.com"}, api.plain.ReplyToAddresses)
	assert.Nil(t, api.plain.Message.Body.Text)
	require.Len(t, api.plain.Tags, 1)
	assert.Equal(t, "launch", aws.ToString(api.plain.Tags[0].Value))
}

func TestSendEmail_Error(t *testing.T) {
	p := NewSESProvider(&fakeSES{err: errors.New("throttled")}, "noreply@example.com")
	_, err := p.SendEmail(context.Background(), notifx.EmailMessage{To: []string{"a@example.com"}, Subject: "x", TextBody: "y"})
	assert.True(t, notifx.ErrSendFailed.Is(err))
}

func TestSendEmail_RawWithAttachment(t *testing.T) {
	api := &fakeSES{}
	p := NewSESProvider(api, "noreply@example.com")

	res, err := p.SendEmail(context.Background(), notifx.EmailMessage{
		FromName:    "Example",
		To:          []string{"a@example.com"},
		BCC:         []string{"hidden@example.com"},
		Subject:     "Invoice",
		TextBody:    "see attached",
		Attachments: []notifx.Attachment{{Filename: "inv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "raw-1", res.MessageID)
	assert.Equal(t, []string{"a@example.com", "hidden@example.com"}, api.raw.Destinations)

	m, err := mail.ReadMessage(bytes.NewReader(api.raw.RawMessage.Data))
	require.NoError(t, err)
	assert.Equal(t, `"Example" <noreply@example.com>`, m.Header.Get("From"))
	assert.Empty(t, m.Header.Get("Bcc"))
	assert.NotContains(t, string(api.raw.RawMessage.Data), "hidden@example.com")

	mediaType, params, err := mime.ParseMediaType(m.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(m.Body, params["boundary"])
	var kinds []string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		kinds = append(kinds, strings.Split(part.Header.Get("Content-Type"), ";")[0])
		if part.FileName() != "" {
			assert.Equal(t, "inv.pdf", part.FileName())
		}
	}
	assert.Equal(t, []string{"multipart/alternative", "application/pdf"}, kinds)
}
