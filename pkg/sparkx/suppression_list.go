package sparkx

import "context"

// SuppressionListService manages the account suppression list.
type SuppressionListService service

// SuppressionEntry is one suppressed recipient.
type SuppressionEntry struct {
	Recipient        string `json:"recipient"`
	Type             string `json:"type,omitempty"`
	Transactional    *bool  `json:"transactional,omitempty"`
	NonTransactional *bool  `json:"non_transactional,omitempty"`
	Source           string `json:"source,omitempty"`
	Description      string `json:"description,omitempty"`
	Created          string `json:"created,omitempty"`
	Updated          string `json:"updated,omitempty"`
}

// SuppressionSearch filters Search. Dates use the service's
// YYYY-MM-DDTHH:MM format.
type SuppressionSearch struct {
	To          string
	From        string
	Domain      string
	Cursor      string
	Description string
	Types       []string
	Sources     []string
	Limit       int
	PerPage     int
}

func (p SuppressionSearch) query() params {
	return params{}.
		set("to", p.To).
		set("from", p.From).
		set("domain", p.Domain).
		set("cursor", p.Cursor).
		set("description", p.Description).
		list("types", p.Types).
		list("sources", p.Sources).
		int("limit", p.Limit).
		int("per_page", p.PerPage)
}

// Search queries the suppression list.
func (s *SuppressionListService) Search(ctx context.Context, search SuppressionSearch) (*Response[[]SuppressionEntry], error) {
	return call[[]SuppressionEntry](ctx, (*service)(s), get("/suppression-list", search.query().values()))
}

// CheckStatus returns the suppression entries of one recipient.
func (s *SuppressionListService) CheckStatus(ctx context.Context, email string) (*Response[[]SuppressionEntry], error) {
	if err := required("email", email); err != nil {
		return nil, err
	}
	return call[[]SuppressionEntry](ctx, (*service)(s), get(path("suppression-list", email), nil))
}

// RemoveStatus removes a recipient from the suppression list.
func (s *SuppressionListService) RemoveStatus(ctx context.Context, email string) (*Response[Empty], error) {
	if err := required("email", email); err != nil {
		return nil, err
	}
	return call[Empty](ctx, (*service)(s), del(path("suppression-list", email)))
}

// Upsert inserts or updates suppression entries in bulk.
func (s *SuppressionListService) Upsert(ctx context.Context, entries ...SuppressionEntry) (*Response[MessageResult], error) {
	if len(entries) == 0 {
		return nil, usageError("at least one suppression entry is required")
	}
	for _, e := range entries {
		if e.Recipient == "" {
			return nil, usageError("suppression entry recipient is required")
		}
	}
	body := map[string]any{"recipients": entries}
	return call[MessageResult](ctx, (*service)(s), put("/suppression-list", nil, body))
}
