package notifx

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	From        string       `json:"from" yaml:"from"`
	FromName    string       `json:"from_name,omitempty" yaml:"from_name"`
	To          []string     `json:"to" yaml:"to"`
	CC          []string     `json:"cc,omitempty" yaml:"cc"`
	BCC         []string     `json:"bcc,omitempty" yaml:"bcc"`
	ReplyTo     string       `json:"reply_to,omitempty" yaml:"reply_to"`
	Subject     string       `json:"subject" yaml:"subject"`
	TextBody    string       `json:"text_body,omitempty" yaml:"text_body"`
	HTMLBody    string       `json:"html_body,omitempty" yaml:"html_body"`
	Attachments []Attachment `json:"attachments,omitempty" yaml:"-"`
}

// Recipients returns every address the message goes to.
func (m EmailMessage) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.CC)+len(m.BCC))
	out = append(out, m.To...)
	out = append(out, m.CC...)
	return append(out, m.BCC...)
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// SendResult represents the outcome of a single email send attempt.
type SendResult struct {
	MessageID string `json:"message_id,omitempty"`
	Provider  string `json:"provider,omitempty"`
	To        string `json:"to"`
	Accepted  int    `json:"accepted,omitempty"`
	Rejected  int    `json:"rejected,omitempty"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}
