package sparkx

import "context"

// RelayWebhooksService manages inbound relay webhooks.
type RelayWebhooksService service

// RelayMatch selects the inbound traffic a relay webhook receives.
type RelayMatch struct {
	Protocol string `json:"protocol,omitempty"`
	Domain   string `json:"domain"`
}

// RelayWebhook forwards inbound mail for a domain to a target URL.
type RelayWebhook struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name,omitempty"`
	Target    string      `json:"target,omitempty"`
	AuthToken string      `json:"auth_token,omitempty"`
	Match     *RelayMatch `json:"match,omitempty"`
}

// All lists relay webhooks.
func (s *RelayWebhooksService) All(ctx context.Context) (*Response[[]RelayWebhook], error) {
	return call[[]RelayWebhook](ctx, (*service)(s), get("/relay-webhooks", nil))
}

// Find returns one relay webhook.
func (s *RelayWebhooksService) Find(ctx context.Context, id string) (*Response[RelayWebhook], error) {
	if err := required("relay webhook id", id); err != nil {
		return nil, err
	}
	return call[RelayWebhook](ctx, (*service)(s), get(path("relay-webhooks", id), nil))
}

// Create registers a relay webhook.
func (s *RelayWebhooksService) Create(ctx context.Context, w RelayWebhook) (*Response[IDResult], error) {
	if err := required("relay webhook target", w.Target); err != nil {
		return nil, err
	}
	if w.Match == nil || w.Match.Domain == "" {
		return nil, usageError("relay webhook match domain is required")
	}
	return call[IDResult](ctx, (*service)(s), post("/relay-webhooks", nil, w))
}

// Update changes a relay webhook. w.ID selects the webhook.
func (s *RelayWebhooksService) Update(ctx context.Context, w RelayWebhook) (*Response[IDResult], error) {
	id := w.ID
	if err := required("relay webhook id", id); err != nil {
		return nil, err
	}
	w.ID = ""
	return call[IDResult](ctx, (*service)(s), put(path("relay-webhooks", id), nil, w))
}

// Delete removes a relay webhook.
func (s *RelayWebhooksService) Delete(ctx context.Context, id string) (*Response[Empty], error) {
	if err := required("relay webhook id", id); err != nil {
		return nil, err
	}
	return call[Empty](ctx, (*service)(s), del(path("relay-webhooks", id)))
}
