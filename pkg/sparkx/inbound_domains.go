package sparkx

import "context"

// InboundDomainsService manages domains that receive relayed mail.
type InboundDomainsService service

// InboundDomain is a domain accepting inbound mail.
type InboundDomain struct {
	Domain string `json:"domain"`
}

// All lists inbound domains.
func (s *InboundDomainsService) All(ctx context.Context) (*Response[[]InboundDomain], error) {
	return call[[]InboundDomain](ctx, (*service)(s), get("/inbound-domains", nil))
}

// Find returns one inbound domain.
func (s *InboundDomainsService) Find(ctx context.Context, domain string) (*Response[InboundDomain], error) {
	if err := required("domain", domain); err != nil {
		return nil, err
	}
	return call[InboundDomain](ctx, (*service)(s), get(path("inbound-domains", domain), nil))
}

// Create registers an inbound domain.
func (s *InboundDomainsService) Create(ctx context.Context, domain string) (*Response[Empty], error) {
	if err := required("domain", domain); err != nil {
		return nil, err
	}
	return call[Empty](ctx, (*service)(s), post("/inbound-domains", nil, InboundDomain{Domain: domain}))
}

// Delete removes an inbound domain.
func (s *InboundDomainsService) Delete(ctx context.Context, domain string) (*Response[Empty], error) {
	if err := required("domain", domain); err != nil {
		return nil, err
	}
	return call[Empty](ctx, (*service)(s), del(path("inbound-domains", domain)))
}
