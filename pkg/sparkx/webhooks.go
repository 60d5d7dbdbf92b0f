package sparkx

import "context"

// WebhooksService manages event webhooks.
type WebhooksService service

// Webhook pushes event batches to a target URL.
type Webhook struct {
	ID                 string         `json:"id,omitempty"`
	Name               string         `json:"name,omitempty"`
	Target             string         `json:"target,omitempty"`
	Events             []string       `json:"events,omitempty"`
	AuthType           string         `json:"auth_type,omitempty"`
	AuthRequestDetails map[string]any `json:"auth_request_details,omitempty"`
	AuthCredentials    map[string]any `json:"auth_credentials,omitempty"`
	AuthToken          string         `json:"auth_token,omitempty"`
	LastSuccessful     string         `json:"last_successful,omitempty"`
	LastFailure        string         `json:"last_failure,omitempty"`
	Links              []Link         `json:"links,omitempty"`
}

// WebhookResult is returned by Create and Update.
type WebhookResult struct {
	ID    string `json:"id"`
	Links []Link `json:"links,omitempty"`
}

// WebhookValidateResult is the target's answer to a validation message.
type WebhookValidateResult struct {
	Msg      string `json:"msg"`
	Response struct {
		Status  int               `json:"status"`
		Headers map[string]string `json:"headers,omitempty"`
		Body    string            `json:"body"`
	} `json:"response"`
}

// BatchStatus is one delivery attempt of a webhook batch.
type BatchStatus struct {
	BatchID      string  `json:"batch_id"`
	Ts           string  `json:"ts"`
	Attempts     int     `json:"attempts"`
	ResponseCode FlexInt `json:"response_code"`
	FailureCode  FlexInt `json:"failure_code,omitempty"`
}

// WebhookDocumentation describes every event class, keyed by class name.
type WebhookDocumentation map[string]EventClassDoc

// EventClassDoc documents one event class.
type EventClassDoc struct {
	Description string              `json:"description"`
	DisplayName string              `json:"display_name"`
	Events      map[string]EventDoc `json:"events"`
}

// EventDoc documents one event type and its fields.
type EventDoc struct {
	Description string                `json:"description"`
	DisplayName string                `json:"display_name"`
	Event       map[string]EventField `json:"event"`
}

// EventField documents one event field. The service names the sample
// member in camel case.
type EventField struct {
	Description string `json:"description"`
	SampleValue any    `json:"sampleValue"`
}

// All lists webhooks, rendering timestamps in timezone when set.
func (s *WebhooksService) All(ctx context.Context, timezone string) (*Response[[]Webhook], error) {
	q := params{}.set("timezone", timezone)
	return call[[]Webhook](ctx, (*service)(s), get("/webhooks", q.values()))
}

// Describe returns one webhook.
func (s *WebhooksService) Describe(ctx context.Context, id, timezone string) (*Response[Webhook], error) {
	if err := required("webhook id", id); err != nil {
		return nil, err
	}
	q := params{}.set("timezone", timezone)
	return call[Webhook](ctx, (*service)(s), get(path("webhooks", id), q.values()))
}

// Create registers a webhook.
func (s *WebhooksService) Create(ctx context.Context, w Webhook) (*Response[WebhookResult], error) {
	if err := required("webhook target", w.Target); err != nil {
		return nil, err
	}
	if len(w.Events) == 0 {
		return nil, usageError("webhook events are required")
	}
	w.ID, w.LastSuccessful, w.LastFailure, w.Links = "", "", "", nil
	return call[WebhookResult](ctx, (*service)(s), post("/webhooks", nil, w))
}

// Update changes a webhook. w.ID selects it.
func (s *WebhooksService) Update(ctx context.Context, w Webhook) (*Response[WebhookResult], error) {
	id := w.ID
	if err := required("webhook id", id); err != nil {
		return nil, err
	}
	w.ID, w.LastSuccessful, w.LastFailure, w.Links = "", "", "", nil
	return call[WebhookResult](ctx, (*service)(s), put(path("webhooks", id), nil, w))
}

// Validate sends a test message to the webhook target.
func (s *WebhooksService) Validate(ctx context.Context, id string, message any) (*Response[WebhookValidateResult], error) {
	if err := required("webhook id", id); err != nil {
		return nil, err
	}
	if message == nil {
		message = map[string]any{}
	}
	body := map[string]any{"message": message}
	return call[WebhookValidateResult](ctx, (*service)(s), post(path("webhooks", id, "validate"), nil, body))
}

// GetBatchStatus returns recent delivery attempts of a webhook.
func (s *WebhooksService) GetBatchStatus(ctx context.Context, id string, limit int) (*Response[[]BatchStatus], error) {
	if err := required("webhook id", id); err != nil {
		return nil, err
	}
	q := params{}.int("limit", limit)
	return call[[]BatchStatus](ctx, (*service)(s), get(path("webhooks", id, "batch-status"), q.values()))
}

// Delete removes a webhook.
func (s *WebhooksService) Delete(ctx context.Context, id string) (*Response[Empty], error) {
	if err := required("webhook id", id); err != nil {
		return nil, err
	}
	return call[Empty](ctx, (*service)(s), del(path("webhooks", id)))
}

// GetDocumentation describes every event type a webhook can receive.
func (s *WebhooksService) GetDocumentation(ctx context.Context) (*Response[WebhookDocumentation], error) {
	return call[WebhookDocumentation](ctx, (*service)(s), get("/webhooks/events/documentation", nil))
}

// GetSamples returns example batches for the given event types, or for
// all of them when none are given.
func (s *WebhooksService) GetSamples(ctx context.Context, events ...string) (*Response[[]WebhookPayload], error) {
	q := params{}.list("events", events)
	return call[[]WebhookPayload](ctx, (*service)(s), get("/webhooks/events/samples", q.values()))
}
