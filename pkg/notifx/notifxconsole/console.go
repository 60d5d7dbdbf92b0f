package notifxconsole

import (
	"context"
	"strings"

	"github.com/Abraxas-365/sparkx/pkg/logx"
	"github.com/Abraxas-365/sparkx/pkg/notifx"
	"github.com/google/uuid"
)

// ProviderName identifies this provider in results.
const ProviderName = "console"

// ConsoleProvider logs emails instead of sending them. Used in development
// and as the dry-run provider of the CLI.
type ConsoleProvider struct {
	logger *logx.Logger
}

var _ notifx.EmailSender = (*ConsoleProvider)(nil)

// NewConsoleProvider creates a console provider. A nil logger uses the default one.
func NewConsoleProvider(logger *logx.Logger) *ConsoleProvider {
	return &ConsoleProvider{logger: logger}
}

// SendEmail logs the email details and returns a synthetic message id.
func (p *ConsoleProvider) SendEmail(_ context.Context, msg notifx.EmailMessage, opts ...notifx.Option) (notifx.SendResult, error) {
	logger := p.logger
	if logger == nil {
		logger = logx.GetDefaultLogger()
	}
	o := notifx.ApplyOptions(opts)
	id := uuid.NewString()

	entry := logger.WithFields(logx.Fields{
		"message_id":  id,
		"from":        msg.From,
		"to":          strings.Join(msg.To, ", "),
		"subject":     msg.Subject,
		"attachments": len(msg.Attachments),
	})
	if o.CampaignID != "" {
		entry.WithField("campaign_id", o.CampaignID)
	}
	entry.Info("notifx/console: email sent (dev mode)")

	if msg.TextBody != "" {
		logger.WithField("message_id", id).Debug("notifx/console: text body:\n" + msg.TextBody)
	}
	if msg.HTMLBody != "" {
		logger.WithField("message_id", id).Debug("notifx/console: html body:\n" + msg.HTMLBody)
	}

	to := ""
	if len(msg.To) > 0 {
		to = msg.To[0]
	}
	return notifx.SendResult{
		MessageID: id,
		Provider:  ProviderName,
		To:        to,
		Accepted:  len(msg.Recipients()),
		Success:   true,
	}, nil
}
