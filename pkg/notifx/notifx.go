// Package notifx is a provider-neutral email facade. SparkPost is the
// primary provider; SES, Resend and a console logger are alternatives.
package notifx

import (
	"context"
	"net/mail"

	"github.com/Abraxas-365/sparkx/pkg/asyncx"
	"github.com/Abraxas-365/sparkx/pkg/errx"
	"github.com/Abraxas-365/sparkx/pkg/fsx"
)

// EmailSender sends a single email.
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) (SendResult, error)
}

// BulkEmailSender sends multiple emails in a batch.
type BulkEmailSender interface {
	SendBulkEmail(ctx context.Context, msgs []EmailMessage, opts ...Option) ([]SendResult, error)
}

// Client is the main entry point for sending notifications.
type Client struct {
	provider  EmailSender
	templates *TemplateRegistry
	from      string
	fromName  string
	replyTo   string
	workers   int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultFrom fills the sender of messages that leave it empty.
func WithDefaultFrom(address, name string) ClientOption {
	return func(c *Client) {
		c.from = address
		c.fromName = name
	}
}

// WithDefaultReplyTo fills the reply-to address of messages without one.
func WithDefaultReplyTo(address string) ClientOption {
	return func(c *Client) {
		c.replyTo = address
	}
}

// WithBulkConcurrency bounds parallel sends for providers without a batch API.
func WithBulkConcurrency(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.workers = n
		}
	}
}

// NewClient creates a new notification client.
func NewClient(provider EmailSender, opts ...ClientOption) *Client {
	c := &Client{
		provider:  provider,
		templates: NewTemplateRegistry(),
		workers:   4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Templates exposes the template registry.
func (c *Client) Templates() *TemplateRegistry {
	return c.templates
}

// SendEmail validates msg and sends it through the configured provider.
func (c *Client) SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) (SendResult, error) {
	if c.provider == nil {
		return SendResult{}, notifxErrors.New(ErrNoProvider)
	}
	msg = c.withDefaults(msg)
	if err := Validate(msg); err != nil {
		return SendResult{}, err
	}
	return c.provider.SendEmail(ctx, msg, opts...)
}

// SendBulk sends every message. Invalid messages fail individually; the
// batch is never short-circuited.
func (c *Client) SendBulk(ctx context.Context, msgs []EmailMessage, opts ...Option) ([]SendResult, error) {
	if c.provider == nil {
		return nil, notifxErrors.New(ErrNoProvider)
	}
	for i := range msgs {
		msgs[i] = c.withDefaults(msgs[i])
	}

	if bulk, ok := c.provider.(BulkEmailSender); ok {
		for _, msg := range msgs {
			if err := Validate(msg); err != nil {
				return nil, err
			}
		}
		return bulk.SendBulkEmail(ctx, msgs, opts...)
	}

	settled := asyncx.Pool(ctx, c.workers, msgs, func(ctx context.Context, msg EmailMessage) (SendResult, error) {
		return c.SendEmail(ctx, msg, opts...)
	})

	results := make([]SendResult, len(msgs))
	for i, r := range settled {
		results[i] = r.Value
		if len(msgs[i].To) > 0 && results[i].To == "" {
			results[i].To = msgs[i].To[0]
		}
		results[i].Success = r.OK()
		if r.Err != nil {
			results[i].Error = r.Err.Error()
		}
	}
	return results, nil
}

// RegisterTemplate parses and stores a named template for later use.
func (c *Client) RegisterTemplate(name string, tmpl EmailTemplate) error {
	return c.templates.Register(name, tmpl)
}

// SendTemplatedEmail renders a template into msg and sends it. Rendered
// parts replace the corresponding fields of msg.
func (c *Client) SendTemplatedEmail(ctx context.Context, templateName string, data any, msg EmailMessage, opts ...Option) (SendResult, error) {
	out, err := c.templates.Render(templateName, data)
	if err != nil {
		return SendResult{}, err
	}

	if out.Subject != "" {
		msg.Subject = out.Subject
	}
	if out.HTML != "" {
		msg.HTMLBody = out.HTML
	}
	if out.Text != "" {
		msg.TextBody = out.Text
	}
	return c.SendEmail(ctx, msg, opts...)
}

func (c *Client) withDefaults(msg EmailMessage) EmailMessage {
	if msg.From == "" {
		msg.From = c.from
		if msg.FromName == "" {
			msg.FromName = c.fromName
		}
	}
	if msg.ReplyTo == "" {
		msg.ReplyTo = c.replyTo
	}
	return msg
}

// Validate checks addresses and required fields.
func Validate(msg EmailMessage) error {
	invalid := func(reason string) *errx.Error {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", reason)
	}

	if len(msg.To) == 0 {
		return invalid("no recipients")
	}
	if msg.Subject == "" {
		return invalid("empty subject")
	}
	if msg.TextBody == "" && msg.HTMLBody == "" {
		return invalid("empty body")
	}
	if msg.From == "" {
		return invalid("no sender")
	}
	if _, err := mail.ParseAddress(msg.From); err != nil {
		return invalid("bad sender address").WithDetail("address", msg.From)
	}
	for _, addr := range msg.Recipients() {
		if _, err := mail.ParseAddress(addr); err != nil {
			return invalid("bad recipient address").WithDetail("address", addr)
		}
	}
	if msg.ReplyTo != "" {
		if _, err := mail.ParseAddress(msg.ReplyTo); err != nil {
			return invalid("bad reply-to address").WithDetail("address", msg.ReplyTo)
		}
	}
	return nil
}

// LoadAttachment reads path from r into an attachment.
func LoadAttachment(ctx context.Context, r fsx.FileReader, path string) (Attachment, error) {
	info, err := r.Stat(ctx, path)
	if err != nil {
		return Attachment{}, notifxErrors.NewWithCause(ErrAttachment, err).WithDetail("path", path)
	}
	data, err := r.ReadFile(ctx, path)
	if err != nil {
		return Attachment{}, notifxErrors.NewWithCause(ErrAttachment, err).WithDetail("path", path)
	}
	return Attachment{
		Filename:    info.Name,
		ContentType: info.ContentType,
		Data:        data,
	}, nil
}
