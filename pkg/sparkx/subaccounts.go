package sparkx

import (
	"context"
	"strconv"
)

// SubaccountsService manages subaccounts.
type SubaccountsService service

// Subaccount is a child account with its own sending identity.
type Subaccount struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Status           string `json:"status"`
	IPPool           string `json:"ip_pool,omitempty"`
	ComplianceStatus string `json:"compliance_status,omitempty"`
}

// SubaccountCreate describes a new subaccount and its initial API key.
type SubaccountCreate struct {
	Name        string   `json:"name"`
	KeyLabel    string   `json:"key_label,omitempty"`
	KeyGrants   []string `json:"key_grants,omitempty"`
	KeyValidIPs []string `json:"key_valid_ips,omitempty"`
	IPPool      string   `json:"ip_pool,omitempty"`
	SetupAPIKey *bool    `json:"setup_api_key,omitempty"`
}

// SubaccountCreateResult carries the id and the generated key.
type SubaccountCreateResult struct {
	SubaccountID int    `json:"subaccount_id"`
	Key          string `json:"key,omitempty"`
	Label        string `json:"label,omitempty"`
	ShortKey     string `json:"short_key,omitempty"`
}

// SubaccountUpdate changes a subaccount. ID selects it.
type SubaccountUpdate struct {
	ID     int    `json:"-"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status,omitempty"`
	IPPool string `json:"ip_pool,omitempty"`
}

// All lists subaccounts.
func (s *SubaccountsService) All(ctx context.Context) (*Response[[]Subaccount], error) {
	return call[[]Subaccount](ctx, (*service)(s), get("/subaccounts", nil))
}

// Find returns one subaccount.
func (s *SubaccountsService) Find(ctx context.Context, id int) (*Response[Subaccount], error) {
	if id <= 0 {
		return nil, usageError("subaccount id is required")
	}
	return call[Subaccount](ctx, (*service)(s), get(path("subaccounts", strconv.Itoa(id)), nil))
}

// Create provisions a subaccount.
func (s *SubaccountsService) Create(ctx context.Context, sub SubaccountCreate) (*Response[SubaccountCreateResult], error) {
	if err := required("subaccount name", sub.Name); err != nil {
		return nil, err
	}
	setupKey := sub.SetupAPIKey == nil || *sub.SetupAPIKey
	if setupKey && (sub.KeyLabel == "" || len(sub.KeyGrants) == 0) {
		return nil, usageError("key_label and key_grants are required when setting up an API key")
	}
	return call[SubaccountCreateResult](ctx, (*service)(s), post("/subaccounts", nil, sub))
}

// Update changes a subaccount.
func (s *SubaccountsService) Update(ctx context.Context, u SubaccountUpdate) (*Response[MessageResult], error) {
	if u.ID <= 0 {
		return nil, usageError("subaccount id is required")
	}
	return call[MessageResult](ctx, (*service)(s), put(path("subaccounts", strconv.Itoa(u.ID)), nil, u))
}
