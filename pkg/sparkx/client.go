package sparkx

import (
	"net/http"
	"net/url"
	"strings"
)

// Client is a SparkPost API client. It is safe for concurrent use: its
// configuration is frozen at construction and every call builds its own
// Request.
type Client struct {
	cfg     Config
	origin  *url.URL
	headers map[string]string

	InboundDomains  *InboundDomainsService
	MessageEvents   *MessageEventsService
	RecipientLists  *RecipientListsService
	RelayWebhooks   *RelayWebhooksService
	SendingDomains  *SendingDomainsService
	Subaccounts     *SubaccountsService
	SuppressionList *SuppressionListService
	Templates       *TemplatesService
	Transmissions   *TransmissionsService
	Webhooks        *WebhooksService
}

type service struct {
	client *Client
}

// New creates a client from a bare API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	return NewFromConfig(Config{APIKey: apiKey}, opts...)
}

// NewFromConfig creates a client from a configuration value. Options are
// applied on top of cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	cfg.Headers = cloneHeaders(cfg.Headers)
	for _, opt := range opts {
		opt(&cfg)
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, sparkxErrors.New(ErrMissingAPIKey)
	}
	if cfg.Origin == "" {
		cfg.Origin = DefaultOrigin
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}

	origin, err := url.Parse(cfg.Origin)
	if err != nil || (origin.Scheme != "http" && origin.Scheme != "https") || origin.Host == "" {
		return nil, sparkxErrors.New(ErrInvalidConfig).
			WithDetail("origin", cfg.Origin)
	}

	headers := map[string]string{
		"Authorization": cfg.APIKey,
		"User-Agent":    "sparkx-go/" + Version,
		"Accept":        "application/json",
	}
	for k, v := range cfg.Headers {
		headers[http.CanonicalHeaderKey(k)] = v
	}

	c := &Client{
		cfg:     cfg,
		origin:  origin,
		headers: headers,
	}
	s := &service{client: c}
	c.InboundDomains = (*InboundDomainsService)(s)
	c.MessageEvents = (*MessageEventsService)(s)
	c.RecipientLists = (*RecipientListsService)(s)
	c.RelayWebhooks = (*RelayWebhooksService)(s)
	c.SendingDomains = (*SendingDomainsService)(s)
	c.Subaccounts = (*SubaccountsService)(s)
	c.SuppressionList = (*SuppressionListService)(s)
	c.Templates = (*TemplatesService)(s)
	c.Transmissions = (*TransmissionsService)(s)
	c.Webhooks = (*WebhooksService)(s)

	return c, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	cfg := c.cfg
	cfg.Headers = cloneHeaders(c.cfg.Headers)
	return cfg
}

func cloneHeaders(h map[string]string) map[string]string {
	if h == nil {
		return nil
	}
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
