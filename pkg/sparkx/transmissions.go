package sparkx

import "context"

// TransmissionsService sends messages. Every method is a single request.
type TransmissionsService service

// TransmissionOptions tune delivery of a transmission.
type TransmissionOptions struct {
	StartTime       string `json:"start_time,omitempty"`
	OpenTracking    *bool  `json:"open_tracking,omitempty"`
	ClickTracking   *bool  `json:"click_tracking,omitempty"`
	Transactional   *bool  `json:"transactional,omitempty"`
	Sandbox         *bool  `json:"sandbox,omitempty"`
	SkipSuppression *bool  `json:"skip_suppression,omitempty"`
	IPPool          string `json:"ip_pool,omitempty"`
	InlineCSS       *bool  `json:"inline_css,omitempty"`
}

// Transmission is a message sent to one or more recipients.
type Transmission struct {
	ID               string               `json:"id,omitempty"`
	State            string               `json:"state,omitempty"`
	Options          *TransmissionOptions `json:"options,omitempty"`
	Recipients       Recipients           `json:"recipients"`
	CampaignID       string               `json:"campaign_id,omitempty"`
	Description      string               `json:"description,omitempty"`
	Metadata         map[string]any       `json:"metadata,omitempty"`
	SubstitutionData map[string]any       `json:"substitution_data,omitempty"`
	ReturnPath       string               `json:"return_path,omitempty"`
	Content          MessageContent       `json:"content"`

	TotalRecipients      int `json:"total_recipients,omitempty"`
	NumGenerated         int `json:"num_generated,omitempty"`
	NumFailedGeneration  int `json:"num_failed_generation,omitempty"`
	NumInvalidRecipients int `json:"num_invalid_recipients,omitempty"`
}

// SendResult summarises an accepted transmission.
type SendResult struct {
	ID                      string        `json:"id"`
	TotalRejectedRecipients int           `json:"total_rejected_recipients"`
	TotalAcceptedRecipients int           `json:"total_accepted_recipients"`
	RcptToErrors            []ErrorDetail `json:"rcpt_to_errors,omitempty"`
}

// TransmissionFilter narrows All.
type TransmissionFilter struct {
	CampaignID string
	TemplateID string
}

// SendOption adjusts a Send call.
type SendOption func(*sendOptions)

type sendOptions struct {
	numRcptErrors int
}

// WithNumRcptErrors limits how many recipient errors the service reports.
func WithNumRcptErrors(n int) SendOption {
	return func(o *sendOptions) {
		o.numRcptErrors = n
	}
}

// All lists transmissions, optionally filtered by campaign or template.
func (s *TransmissionsService) All(ctx context.Context, f TransmissionFilter) (*Response[[]Transmission], error) {
	q := params{}.
		set("campaign_id", f.CampaignID).
		set("template_id", f.TemplateID)
	return call[[]Transmission](ctx, (*service)(s), get("/transmissions", q.values()))
}

// Find returns one transmission.
func (s *TransmissionsService) Find(ctx context.Context, id string) (*Response[Transmission], error) {
	if err := required("transmission id", id); err != nil {
		return nil, err
	}
	return call[Transmission](ctx, (*service)(s), get(path("transmissions", id), nil))
}

// Send creates a transmission.
func (s *TransmissionsService) Send(ctx context.Context, tx Transmission, opts ...SendOption) (*Response[SendResult], error) {
	req, err := s.sendRequest(tx, opts...)
	if err != nil {
		return nil, err
	}
	return call[SendResult](ctx, (*service)(s), req)
}

func (s *TransmissionsService) sendRequest(tx Transmission, opts ...SendOption) (Request, error) {
	var o sendOptions
	for _, opt := range opts {
		opt(&o)
	}
	if tx.Content.IsZero() {
		return Request{}, usageError("transmission content is required")
	}
	if _, err := tx.Content.variant(); err != nil {
		return Request{}, usageError("%v", err)
	}
	if tx.Recipients.ListID != "" && len(tx.Recipients.Inline) > 0 {
		return Request{}, usageError("recipients: list_id and inline recipients are exclusive")
	}
	q := params{}.int("num_rcpt_errors", o.numRcptErrors)
	return post("/transmissions", q.values(), tx), nil
}
