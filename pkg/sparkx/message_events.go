package sparkx

import (
	"context"
	"strconv"
)

// MessageEventsService searches the message event history.
type MessageEventsService service

// MessageEventsSearch filters a message event search. Every slice is sent
// as one comma separated parameter.
type MessageEventsSearch struct {
	BounceClasses   []int
	CampaignIDs     []string
	Events          []string
	FriendlyFroms   []string
	From            string
	MessageIDs      []string
	Page            int
	PerPage         int
	Reason          string
	Recipients      []string
	TemplateIDs     []string
	Timezone        string
	To              string
	TransmissionIDs []string
}

func (p MessageEventsSearch) query() params {
	classes := make([]string, len(p.BounceClasses))
	for i, c := range p.BounceClasses {
		classes[i] = strconv.Itoa(c)
	}
	return params{}.
		list("bounce_classes", classes).
		list("campaign_ids", p.CampaignIDs).
		list("events", p.Events).
		list("friendly_froms", p.FriendlyFroms).
		set("from", p.From).
		list("message_ids", p.MessageIDs).
		int("page", p.Page).
		int("per_page", p.PerPage).
		set("reason", p.Reason).
		list("recipients", p.Recipients).
		list("template_ids", p.TemplateIDs).
		set("timezone", p.Timezone).
		set("to", p.To).
		list("transmission_ids", p.TransmissionIDs)
}

// Search returns one page of message events. TotalCount and Links on the
// response describe the remaining pages.
func (s *MessageEventsService) Search(ctx context.Context, search MessageEventsSearch) (*Response[[]MessageEvent], error) {
	return call[[]MessageEvent](ctx, (*service)(s), get("/message-events", search.query().values()))
}
