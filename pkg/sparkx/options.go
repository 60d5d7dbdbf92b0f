package sparkx

import (
	"net/http"
	"time"
)

const (
	DefaultOrigin     = "https://api.sparkpost.com:443"
	DefaultEndpoint   = "/api"
	DefaultAPIVersion = "v1"
	DefaultTimeout    = 30 * time.Second
	Version           = "1.0.0"
)

// Doer executes one HTTP request. *http.Client satisfies it, so does any
// client wrapped with the pkg/httpx middlewares.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config is the immutable configuration of a Client. NewFromConfig copies
// it; later changes to the value passed in are not observed.
type Config struct {
	// APIKey is sent verbatim in the Authorization header.
	APIKey string

	// Origin is scheme://host[:port] of the API.
	Origin string

	// Endpoint is the path prefix between the origin and the API version.
	// Empty selects DefaultEndpoint; "/" selects no prefix.
	Endpoint string

	// APIVersion is the version path segment, e.g. "v1".
	APIVersion string

	// Headers are sent with every request and override the defaults.
	Headers map[string]string

	// DisableGzip stops the client from asking for gzip encoded responses.
	DisableGzip bool

	// HTTPClient performs the requests. Defaults to an *http.Client with
	// DefaultTimeout.
	HTTPClient Doer
}

// Option configures a Client at construction time.
type Option func(*Config)

// WithOrigin sets the API origin
func WithOrigin(origin string) Option {
	return func(c *Config) {
		c.Origin = origin
	}
}

// WithEndpoint sets the path prefix placed before the API version
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithAPIVersion sets the API version path segment
func WithAPIVersion(version string) Option {
	return func(c *Config) {
		c.APIVersion = version
	}
}

// WithHeader adds a default header
func WithHeader(name, value string) Option {
	return func(c *Config) {
		headers := make(map[string]string, len(c.Headers)+1)
		for k, v := range c.Headers {
			headers[k] = v
		}
		headers[name] = value
		c.Headers = headers
	}
}

// WithHTTPClient sets the client that performs requests
func WithHTTPClient(client Doer) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTimeout bounds every request. When the configured client is an
// *http.Client it is copied, never modified in place.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		switch hc := c.HTTPClient.(type) {
		case nil:
			c.HTTPClient = &http.Client{Timeout: timeout}
		case *http.Client:
			clone := *hc
			clone.Timeout = timeout
			c.HTTPClient = &clone
		}
	}
}

// WithGzip toggles gzip response negotiation
func WithGzip(enabled bool) Option {
	return func(c *Config) {
		c.DisableGzip = !enabled
	}
}
