package sparkx

import "context"

// SendingDomainsService manages the domains mail is sent from.
type SendingDomainsService service

// DKIM is a domain signing key pair.
type DKIM struct {
	SigningDomain string `json:"signing_domain,omitempty"`
	Private       string `json:"private,omitempty"`
	Public        string `json:"public"`
	Selector      string `json:"selector"`
	Headers       string `json:"headers,omitempty"`
}

// SendingDomainStatus is the verification state of a sending domain.
type SendingDomainStatus struct {
	OwnershipVerified   bool   `json:"ownership_verified"`
	DKIMStatus          string `json:"dkim_status"`
	SPFStatus           string `json:"spf_status"`
	AbuseAtStatus       string `json:"abuse_at_status"`
	PostmasterAtStatus  string `json:"postmaster_at_status"`
	CNAMEStatus         string `json:"cname_status,omitempty"`
	ComplianceStatus    string `json:"compliance_status"`
	VerificationMailbox string `json:"verification_mailbox_status,omitempty"`
}

// SendingDomain is a domain registered for sending.
type SendingDomain struct {
	Domain         string               `json:"domain"`
	TrackingDomain string               `json:"tracking_domain,omitempty"`
	Status         *SendingDomainStatus `json:"status,omitempty"`
	DKIM           *DKIM                `json:"dkim,omitempty"`
}

// SendingDomainResult is returned by Create and Update.
type SendingDomainResult struct {
	Message string `json:"message"`
	Domain  string `json:"domain"`
	DKIM    *DKIM  `json:"dkim,omitempty"`
}

// SendingDomainParams creates or updates a sending domain. GenerateDKIM is
// a pointer because the service defaults it to true.
type SendingDomainParams struct {
	Domain         string
	TrackingDomain string
	DKIM           *DKIM
	GenerateDKIM   *bool
	DKIMKeyLength  int
}

type sendingDomainWire struct {
	Domain         string `json:"domain,omitempty"`
	TrackingDomain string `json:"tracking_domain,omitempty"`
	DKIM           *DKIM  `json:"dkim,omitempty"`
	GenerateDKIM   *bool  `json:"generate_dkim,omitempty"`
	DKIMKeyLength  int    `json:"dkim_key_length,omitempty"`
}

func (p SendingDomainParams) wire(includeDomain bool) sendingDomainWire {
	w := sendingDomainWire{
		TrackingDomain: p.TrackingDomain,
		DKIM:           p.DKIM,
		GenerateDKIM:   p.GenerateDKIM,
		DKIMKeyLength:  p.DKIMKeyLength,
	}
	if includeDomain {
		w.Domain = p.Domain
	}
	return w
}

// VerifyParams selects which checks Verify runs.
type VerifyParams struct {
	Domain             string
	DKIMVerify         bool
	SPFVerify          bool
	CNAMEVerify        bool
	PostmasterAtVerify bool
	AbuseAtVerify      bool
	PostmasterAtToken  string
	AbuseAtToken       string
}

type verifyWire struct {
	DKIMVerify         bool   `json:"dkim_verify,omitempty"`
	SPFVerify          bool   `json:"spf_verify,omitempty"`
	CNAMEVerify        bool   `json:"cname_verify,omitempty"`
	PostmasterAtVerify bool   `json:"postmaster_at_verify,omitempty"`
	AbuseAtVerify      bool   `json:"abuse_at_verify,omitempty"`
	PostmasterAtToken  string `json:"postmaster_at_token,omitempty"`
	AbuseAtToken       string `json:"abuse_at_token,omitempty"`
}

// All lists sending domains.
func (s *SendingDomainsService) All(ctx context.Context) (*Response[[]SendingDomain], error) {
	return call[[]SendingDomain](ctx, (*service)(s), get("/sending-domains", nil))
}

// Find returns one sending domain.
func (s *SendingDomainsService) Find(ctx context.Context, domain string) (*Response[SendingDomain], error) {
	if err := required("domain", domain); err != nil {
		return nil, err
	}
	return call[SendingDomain](ctx, (*service)(s), get(path("sending-domains", domain), nil))
}

// Create registers a sending domain.
func (s *SendingDomainsService) Create(ctx context.Context, p SendingDomainParams) (*Response[SendingDomainResult], error) {
	if err := required("domain", p.Domain); err != nil {
		return nil, err
	}
	return call[SendingDomainResult](ctx, (*service)(s), post("/sending-domains", nil, p.wire(true)))
}

// Update changes a sending domain. p.Domain selects the domain.
func (s *SendingDomainsService) Update(ctx context.Context, p SendingDomainParams) (*Response[SendingDomainResult], error) {
	if err := required("domain", p.Domain); err != nil {
		return nil, err
	}
	return call[SendingDomainResult](ctx, (*service)(s), put(path("sending-domains", p.Domain), nil, p.wire(false)))
}

// Delete removes a sending domain.
func (s *SendingDomainsService) Delete(ctx context.Context, domain string) (*Response[Empty], error) {
	if err := required("domain", domain); err != nil {
		return nil, err
	}
	return call[Empty](ctx, (*service)(s), del(path("sending-domains", domain)))
}

// Verify runs the selected verification checks.
func (s *SendingDomainsService) Verify(ctx context.Context, p VerifyParams) (*Response[SendingDomainStatus], error) {
	if err := required("domain", p.Domain); err != nil {
		return nil, err
	}
	body := verifyWire{
		DKIMVerify:         p.DKIMVerify,
		SPFVerify:          p.SPFVerify,
		CNAMEVerify:        p.CNAMEVerify,
		PostmasterAtVerify: p.PostmasterAtVerify,
		AbuseAtVerify:      p.AbuseAtVerify,
		PostmasterAtToken:  p.PostmasterAtToken,
		AbuseAtToken:       p.AbuseAtToken,
	}
	return call[SendingDomainStatus](ctx, (*service)(s), post(path("sending-domains", p.Domain, "verify"), nil, body))
}
