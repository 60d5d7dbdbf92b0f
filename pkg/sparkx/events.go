package sparkx

import (
	"encoding/json"
	"sort"
)

// MessageEvent is a single delivery, engagement or generation event, as
// returned by message event search and pushed by webhooks.
type MessageEvent struct {
	// Class is the event family ("message_event", "track_event", ...). It is
	// only set for events parsed from webhook batches.
	Class string `json:"-"`

	Type            string         `json:"type"`
	EventID         string         `json:"event_id,omitempty"`
	BounceClass     FlexInt        `json:"bounce_class,omitempty"`
	CampaignID      string         `json:"campaign_id,omitempty"`
	CustomerID      FlexInt        `json:"customer_id,omitempty"`
	DelvMethod      string         `json:"delv_method,omitempty"`
	DeviceToken     string         `json:"device_token,omitempty"`
	ErrorCode       FlexInt        `json:"error_code,omitempty"`
	FriendlyFrom    string         `json:"friendly_from,omitempty"`
	InjectionTime   string         `json:"injection_time,omitempty"`
	IPAddress       string         `json:"ip_address,omitempty"`
	IPPool          string         `json:"ip_pool,omitempty"`
	MessageID       string         `json:"message_id,omitempty"`
	MsgFrom         string         `json:"msg_from,omitempty"`
	MsgSize         FlexInt        `json:"msg_size,omitempty"`
	NumRetries      FlexInt        `json:"num_retries,omitempty"`
	RcptMeta        map[string]any `json:"rcpt_meta,omitempty"`
	RcptTags        []string       `json:"rcpt_tags,omitempty"`
	RcptTo          string         `json:"rcpt_to,omitempty"`
	RcptType        string         `json:"rcpt_type,omitempty"`
	RawReason       string         `json:"raw_reason,omitempty"`
	Reason          string         `json:"reason,omitempty"`
	RoutingDomain   string         `json:"routing_domain,omitempty"`
	SendingIP       string         `json:"sending_ip,omitempty"`
	Subject         string         `json:"subject,omitempty"`
	SubaccountID    FlexInt        `json:"subaccount_id,omitempty"`
	TargetLinkURL   string         `json:"target_link_url,omitempty"`
	TemplateID      string         `json:"template_id,omitempty"`
	TemplateVersion FlexInt        `json:"template_version,omitempty"`
	Timestamp       FlexString     `json:"timestamp,omitempty"`
	TransmissionID  string         `json:"transmission_id,omitempty"`
	UserAgent       string         `json:"user_agent,omitempty"`
}

// WebhookPayload is one element of a webhook batch: a single event keyed
// by its class.
type WebhookPayload struct {
	Msys map[string]MessageEvent `json:"msys"`
}

// ParseEventBatch decodes a webhook batch body into its events, in batch
// order. Ping batches, whose msys objects are empty, yield no events.
func ParseEventBatch(body []byte) ([]MessageEvent, error) {
	var batch []WebhookPayload
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, decodeError(0, err)
	}

	events := make([]MessageEvent, 0, len(batch))
	for _, item := range batch {
		classes := make([]string, 0, len(item.Msys))
		for class := range item.Msys {
			classes = append(classes, class)
		}
		sort.Strings(classes)

		for _, class := range classes {
			ev := item.Msys[class]
			ev.Class = class
			events = append(events, ev)
		}
	}
	return events, nil
}

// IsPing reports whether body is a webhook test batch carrying no events.
func IsPing(body []byte) bool {
	events, err := ParseEventBatch(body)
	return err == nil && len(events) == 0
}
