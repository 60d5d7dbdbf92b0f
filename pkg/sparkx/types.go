package sparkx

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Empty is the result type of calls that return no payload.
type Empty struct{}

// IDResult is returned by create and update calls that only echo an id.
type IDResult struct {
	ID string `json:"id"`
}

// MessageResult is returned by calls that answer with a status message.
type MessageResult struct {
	Message string `json:"message"`
}

// Address is an email address, optionally with a display name. It encodes
// as a bare string when only Email is set.
type Address struct {
	Email    string
	Name     string
	HeaderTo string
}

type addressWire struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	HeaderTo string `json:"header_to,omitempty"`
}

func (a Address) MarshalJSON() ([]byte, error) {
	if a.Name == "" && a.HeaderTo == "" {
		return json.Marshal(a.Email)
	}
	return json.Marshal(addressWire(a))
}

func (a *Address) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*a = Address{}
		return json.Unmarshal(data, &a.Email)
	}
	var w addressWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*a = Address(w)
	return nil
}

// Recipient is one addressee of a transmission or recipient list.
type Recipient struct {
	Address          Address        `json:"address"`
	ReturnPath       string         `json:"return_path,omitempty"`
	Tags             []string       `json:"tags,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	SubstitutionData map[string]any `json:"substitution_data,omitempty"`
}

// Recipients is either an inline recipient array or a reference to a
// stored recipient list.
type Recipients struct {
	ListID string
	Inline []Recipient
}

// ListRecipients references a stored recipient list.
func ListRecipients(listID string) Recipients {
	return Recipients{ListID: listID}
}

// InlineRecipients builds an inline recipient array.
func InlineRecipients(rs ...Recipient) Recipients {
	return Recipients{Inline: rs}
}

// To builds inline recipients from bare email addresses.
func To(emails ...string) Recipients {
	rs := make([]Recipient, len(emails))
	for i, e := range emails {
		rs[i] = Recipient{Address: Address{Email: e}}
	}
	return Recipients{Inline: rs}
}

func (r Recipients) MarshalJSON() ([]byte, error) {
	if r.ListID != "" {
		if len(r.Inline) > 0 {
			return nil, errors.New("recipients: list_id and inline recipients are exclusive")
		}
		return json.Marshal(struct {
			ListID string `json:"list_id"`
		}{r.ListID})
	}
	if r.Inline == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Inline)
}

func (r *Recipients) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = Recipients{}
	if len(data) > 0 && data[0] == '{' {
		var ref struct {
			ListID string `json:"list_id"`
		}
		if err := json.Unmarshal(data, &ref); err != nil {
			return err
		}
		r.ListID = ref.ListID
		return nil
	}
	return json.Unmarshal(data, &r.Inline)
}

// Attachment is a base64 encoded file carried inline by a message.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// Content is inline message content.
type Content struct {
	From         Address           `json:"from"`
	Subject      string            `json:"subject"`
	ReplyTo      string            `json:"reply_to,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	Text         string            `json:"text,omitempty"`
	HTML         string            `json:"html,omitempty"`
	AMPHTML      string            `json:"amp_html,omitempty"`
	Attachments  []Attachment      `json:"attachments,omitempty"`
	InlineImages []Attachment      `json:"inline_images,omitempty"`
}

// TemplateRef points a transmission at a stored template.
type TemplateRef struct {
	TemplateID       string `json:"template_id"`
	UseDraftTemplate bool   `json:"use_draft_template,omitempty"`
}

// RFC822Content is a complete pre-built MIME message.
type RFC822Content struct {
	EmailRFC822 string `json:"email_rfc822"`
}

// MessageContent holds exactly one of its variants.
type MessageContent struct {
	Inline   *Content
	Template *TemplateRef
	RFC822   *RFC822Content
}

var errContentVariant = errors.New("content: exactly one of inline, template or rfc822 must be set")

func (c MessageContent) variant() (any, error) {
	var set []any
	if c.Inline != nil {
		set = append(set, c.Inline)
	}
	if c.Template != nil {
		set = append(set, c.Template)
	}
	if c.RFC822 != nil {
		set = append(set, c.RFC822)
	}
	if len(set) != 1 {
		return nil, errContentVariant
	}
	return set[0], nil
}

func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("{}"), nil
	}
	v, err := c.variant()
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*c = MessageContent{}
	if _, ok := keys["template_id"]; ok {
		c.Template = &TemplateRef{}
		return json.Unmarshal(data, c.Template)
	}
	if _, ok := keys["email_rfc822"]; ok {
		c.RFC822 = &RFC822Content{}
		return json.Unmarshal(data, c.RFC822)
	}
	if len(keys) == 0 {
		return nil
	}
	c.Inline = &Content{}
	return json.Unmarshal(data, c.Inline)
}

// IsZero reports whether no variant is set.
func (c MessageContent) IsZero() bool {
	return c.Inline == nil && c.Template == nil && c.RFC822 == nil
}
