package sparkx

import "context"

// RecipientListsService manages stored recipient lists.
type RecipientListsService service

// RecipientList is a named, stored set of recipients.
type RecipientList struct {
	ID                      string         `json:"id,omitempty"`
	Name                    string         `json:"name,omitempty"`
	Description             string         `json:"description,omitempty"`
	Attributes              map[string]any `json:"attributes,omitempty"`
	Recipients              []Recipient    `json:"recipients,omitempty"`
	TotalAcceptedRecipients int            `json:"total_accepted_recipients,omitempty"`
}

// RecipientListResult is returned by Create and Update.
type RecipientListResult struct {
	ID                      string `json:"id"`
	Name                    string `json:"name,omitempty"`
	TotalRejectedRecipients int    `json:"total_rejected_recipients"`
	TotalAcceptedRecipients int    `json:"total_accepted_recipients"`
}

// All lists recipient list summaries.
func (s *RecipientListsService) All(ctx context.Context) (*Response[[]RecipientList], error) {
	return call[[]RecipientList](ctx, (*service)(s), get("/recipient-lists", nil))
}

// Find returns a recipient list, including its recipients when asked.
func (s *RecipientListsService) Find(ctx context.Context, id string, showRecipients bool) (*Response[RecipientList], error) {
	if err := required("recipient list id", id); err != nil {
		return nil, err
	}
	q := params{}.bool("show_recipients", showRecipients)
	return call[RecipientList](ctx, (*service)(s), get(path("recipient-lists", id), q.values()))
}

// Create stores a new recipient list.
func (s *RecipientListsService) Create(ctx context.Context, list RecipientList, numRcptErrors int) (*Response[RecipientListResult], error) {
	if len(list.Recipients) == 0 {
		return nil, usageError("recipient list needs at least one recipient")
	}
	q := params{}.int("num_rcpt_errors", numRcptErrors)
	return call[RecipientListResult](ctx, (*service)(s), post("/recipient-lists", q.values(), list))
}

// Update replaces a recipient list. list.ID selects the list.
func (s *RecipientListsService) Update(ctx context.Context, list RecipientList, numRcptErrors int) (*Response[RecipientListResult], error) {
	id := list.ID
	if err := required("recipient list id", id); err != nil {
		return nil, err
	}
	list.ID = ""
	q := params{}.int("num_rcpt_errors", numRcptErrors)
	return call[RecipientListResult](ctx, (*service)(s), put(path("recipient-lists", id), q.values(), list))
}

// Delete removes a recipient list.
func (s *RecipientListsService) Delete(ctx context.Context, id string) (*Response[Empty], error) {
	if err := required("recipient list id", id); err != nil {
		return nil, err
	}
	return call[Empty](ctx, (*service)(s), del(path("recipient-lists", id)))
}
