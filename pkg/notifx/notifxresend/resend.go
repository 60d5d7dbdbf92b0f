package notifxresend

import (
	"context"
	"strings"

	"github.com/Abraxas-365/sparkx/pkg/notifx"
	"github.com/resend/resend-go/v2"
)

// ProviderName identifies this provider in results and errors.
const ProviderName = "resend"

// ResendProvider implements notifx.EmailSender with the Resend API.
type ResendProvider struct {
	client      *resend.Client
	fromAddress string
}

var (
	_ notifx.EmailSender     = (*ResendProvider)(nil)
	_ notifx.BulkEmailSender = (*ResendProvider)(nil)
)

// NewResendProvider creates a provider from an API key.
func NewResendProvider(apiKey, fromAddress string) *ResendProvider {
	return NewResendProviderWithClient(resend.NewClient(apiKey), fromAddress)
}

// NewResendProviderWithClient wraps an existing client.
func NewResendProviderWithClient(client *resend.Client, fromAddress string) *ResendProvider {
	return &ResendProvider{client: client, fromAddress: fromAddress}
}

// SendEmail sends msg through Resend.
func (p *ResendProvider) SendEmail(ctx context.Context, msg notifx.EmailMessage, opts ...notifx.Option) (notifx.SendResult, error) {
	o := notifx.ApplyOptions(opts)

	resp, err := p.client.Emails.SendWithContext(ctx, p.Request(msg, o))
	if err != nil {
		return notifx.SendResult{}, notifx.SendError(ProviderName, msg, err)
	}

	return notifx.SendResult{
		MessageID: resp.Id,
		Provider:  ProviderName,
		To:        first(msg.To),
		Accepted:  len(msg.Recipients()),
		Success:   true,
	}, nil
}

// SendBulkEmail sends msgs through the batch endpoint, 100 per call.
func (p *ResendProvider) SendBulkEmail(ctx context.Context, msgs []notifx.EmailMessage, opts ...notifx.Option) ([]notifx.SendResult, error) {
	const batchSize = 100
	o := notifx.ApplyOptions(opts)
	results := make([]notifx.SendResult, 0, len(msgs))

	for start := 0; start < len(msgs); start += batchSize {
		chunk := msgs[start:min(start+batchSize, len(msgs))]

		reqs := make([]*resend.SendEmailRequest, len(chunk))
		for i, msg := range chunk {
			reqs[i] = p.Request(msg, o)
		}

		resp, err := p.client.Batch.SendWithContext(ctx, reqs)
		if err != nil {
			return results, notifx.SendError(ProviderName, chunk[0], err)
		}
		for i, msg := range chunk {
			r := notifx.SendResult{Provider: ProviderName, To: first(msg.To), Success: true}
			if i < len(resp.Data) {
				r.MessageID = resp.Data[i].Id
			}
			results = append(results, r)
		}
	}
	return results, nil
}

// Request maps msg onto a Resend request. Tags become name=value pairs;
// the campaign id becomes a "campaign" tag.
func (p *ResendProvider) Request(msg notifx.EmailMessage, o notifx.SendOptions) *resend.SendEmailRequest {
	from := msg.From
	if from == "" {
		from = p.fromAddress
	}
	if msg.FromName != "" && !strings.Contains(from, "<") {
		from = msg.FromName + " <" + from + ">"
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Cc:      msg.CC,
		Bcc:     msg.BCC,
		Subject: msg.Subject,
		Html:    msg.HTMLBody,
		Text:    msg.TextBody,
		ReplyTo: msg.ReplyTo,
	}
	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Content:     a.Data,
			Filename:    a.Filename,
			ContentType: a.ContentType,
		})
	}
	if o.CampaignID != "" {
		req.Tags = append(req.Tags, resend.Tag{Name: "campaign", Value: o.CampaignID})
	}
	for _, t := range o.Tags {
		name, value, ok := strings.Cut(t, "=")
		if !ok {
			value = "true"
		}
		req.Tags = append(req.Tags, resend.Tag{Name: name, Value: value})
	}
	return req
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
