package notifxses

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/notifx"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// ProviderName identifies this provider in results and errors.
const ProviderName = "ses"

// API is the subset of *ses.Client the provider uses.
type API interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	SendRawEmail(ctx context.Context, in *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESProvider implements notifx.EmailSender using AWS SES. Messages with
// attachments go through SendRawEmail.
type SESProvider struct {
	client      API
	fromAddress string
}

var _ notifx.EmailSender = (*SESProvider)(nil)

// NewSESProvider creates a new SES email provider.
func NewSESProvider(client API, fromAddress string) *SESProvider {
	return &SESProvider{
		client:      client,
		fromAddress: fromAddress,
	}
}

// NewFromRegion loads the default AWS credential chain for region.
func NewFromRegion(ctx context.Context, region, fromAddress string) (*SESProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewSESProvider(ses.NewFromConfig(cfg), fromAddress), nil
}

// SendEmail sends a single email via SES.
func (p *SESProvider) SendEmail(ctx context.Context, msg notifx.EmailMessage, opts ...notifx.Option) (notifx.SendResult, error) {
	o := notifx.ApplyOptions(opts)
	if msg.From == "" {
		msg.From = p.fromAddress
	}

	var (
		id  *string
		err error
	)
	if len(msg.Attachments) > 0 {
		id, err = p.sendRaw(ctx, msg, o)
	} else {
		id, err = p.send(ctx, msg, o)
	}
	if err != nil {
		return notifx.SendResult{}, notifx.SendError(ProviderName, msg, err)
	}

	to := ""
	if len(msg.To) > 0 {
		to = msg.To[0]
	}
	return notifx.SendResult{
		MessageID: aws.ToString(id),
		Provider:  ProviderName,
		To:        to,
		Accepted:  len(msg.Recipients()),
		Success:   true,
	}, nil
}

func (p *SESProvider) send(ctx context.Context, msg notifx.EmailMessage, o notifx.SendOptions) (*string, error) {
	body := &types.Body{}
	if msg.TextBody != "" {
		body.Text = &types.Content{
			Data:    aws.String(msg.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{
			Data:    aws.String(msg.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	input := &ses.SendEmailInput{
		Source: aws.String(formatAddress(msg.FromName, msg.From)),
		Destination: &types.Destination{
			ToAddresses:  msg.To,
			CcAddresses:  msg.CC,
			BccAddresses: msg.BCC,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: body,
		},
		Tags: messageTags(o),
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}
	if o.ConfigSet != "" {
		input.ConfigurationSetName = aws.String(o.ConfigSet)
	}

	out, err := p.client.SendEmail(ctx, input)
	if err != nil {
		return nil, err
	}
	return out.MessageId, nil
}

func (p *SESProvider) sendRaw(ctx context.Context, msg notifx.EmailMessage, o notifx.SendOptions) (*string, error) {
	raw, err := BuildRaw(msg)
	if err != nil {
		return nil, sesErrors.NewWithCause(ErrBuildMessage, err)
	}

	input := &ses.SendRawEmailInput{
		Destinations: msg.Recipients(),
		RawMessage:   &types.RawMessage{Data: raw},
		Tags:         messageTags(o),
	}
	if o.ConfigSet != "" {
		input.ConfigurationSetName = aws.String(o.ConfigSet)
	}

	out, err := p.client.SendRawEmail(ctx, input)
	if err != nil {
		return nil, err
	}
	return out.MessageId, nil
}

func messageTags(o notifx.SendOptions) []types.MessageTag {
	if o.CampaignID == "" {
		return nil
	}
	return []types.MessageTag{{Name: aws.String("campaign"), Value: aws.String(o.CampaignID)}}
}
