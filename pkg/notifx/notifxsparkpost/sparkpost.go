package notifxsparkpost

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/Abraxas-365/sparkx/pkg/notifx"
	"github.com/Abraxas-365/sparkx/pkg/ptrx"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
)

// ProviderName identifies this provider in results and errors.
const ProviderName = "sparkpost"

// Transmitter is the part of the SparkPost client the provider needs.
// *sparkx.TransmissionsService satisfies it.
type Transmitter interface {
	Send(ctx context.Context, tx sparkx.Transmission, opts ...sparkx.SendOption) (*sparkx.Response[sparkx.SendResult], error)
}

// SparkPostProvider implements notifx.EmailSender with inline-content transmissions.
type SparkPostProvider struct {
	tx          Transmitter
	fromAddress string
	fromName    string
}

var _ notifx.EmailSender = (*SparkPostProvider)(nil)

// NewSparkPostProvider creates a provider. fromAddress is used for
// messages without a sender.
func NewSparkPostProvider(tx Transmitter, fromAddress, fromName string) *SparkPostProvider {
	return &SparkPostProvider{tx: tx, fromAddress: fromAddress, fromName: fromName}
}

// SendEmail sends one transmission carrying every recipient of msg.
func (p *SparkPostProvider) SendEmail(ctx context.Context, msg notifx.EmailMessage, opts ...notifx.Option) (notifx.SendResult, error) {
	tx := p.Transmission(msg, notifx.ApplyOptions(opts))

	resp, err := p.tx.Send(ctx, tx)
	if err != nil {
		return notifx.SendResult{}, notifx.SendError(ProviderName, msg, err)
	}

	return notifx.SendResult{
		MessageID: resp.Results.ID,
		Provider:  ProviderName,
		To:        first(msg.To),
		Accepted:  resp.Results.TotalAcceptedRecipients,
		Rejected:  resp.Results.TotalRejectedRecipients,
		Success:   true,
	}, nil
}

// Transmission maps msg onto a transmission. CC and BCC recipients carry
// header_to so every copy shows the primary recipients; CC addresses are
// also listed in a CC header.
func (p *SparkPostProvider) Transmission(msg notifx.EmailMessage, o notifx.SendOptions) sparkx.Transmission {
	from := sparkx.Address{Email: msg.From, Name: msg.FromName}
	if from.Email == "" {
		from = sparkx.Address{Email: p.fromAddress, Name: p.fromName}
	}

	headerTo := strings.Join(msg.To, ",")
	recipients := make([]sparkx.Recipient, 0, len(msg.To)+len(msg.CC)+len(msg.BCC))
	for _, addr := range msg.To {
		recipients = append(recipients, sparkx.Recipient{Address: sparkx.Address{Email: addr}, Tags: o.Tags})
	}
	for _, addr := range append(append([]string{}, msg.CC...), msg.BCC...) {
		recipients = append(recipients, sparkx.Recipient{
			Address: sparkx.Address{Email: addr, HeaderTo: headerTo},
			Tags:    o.Tags,
		})
	}

	content := &sparkx.Content{
		From:    from,
		Subject: msg.Subject,
		ReplyTo: msg.ReplyTo,
		Text:    msg.TextBody,
		HTML:    msg.HTMLBody,
	}
	if len(msg.CC) > 0 {
		content.Headers = map[string]string{"CC": strings.Join(msg.CC, ",")}
	}
	for _, a := range msg.Attachments {
		content.Attachments = append(content.Attachments, sparkx.Attachment{
			Name: a.Filename,
			Type: a.ContentType,
			Data: base64.StdEncoding.EncodeToString(a.Data),
		})
	}

	tx := sparkx.Transmission{
		Recipients: sparkx.InlineRecipients(recipients...),
		CampaignID: o.CampaignID,
		Metadata:   o.Metadata,
		Content:    sparkx.MessageContent{Inline: content},
	}
	if o.Sandbox || o.OpenTracking != nil || o.ClickTracking != nil {
		tx.Options = &sparkx.TransmissionOptions{
			OpenTracking:  o.OpenTracking,
			ClickTracking: o.ClickTracking,
		}
		if o.Sandbox {
			tx.Options.Sandbox = ptrx.Bool(true)
		}
	}
	return tx
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
