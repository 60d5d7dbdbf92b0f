// Package httpx decorates http.RoundTripper with logging, metrics, rate
// limiting and request ids. Hand the result to sparkx.WithHTTPClient.
package httpx

import (
	"net/http"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/errx"
)

var httpxErrors = errx.NewRegistry("HTTPX")

var (
	ErrRateLimitWait = httpxErrors.Register("RATE_LIMIT_WAIT", errx.TypeRateLimit, 429, "Gave up waiting for the client rate limiter")
)

// Middleware wraps a RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(req).
func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Chain wraps base with mws. The first middleware sees the request first.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			base = mws[i](base)
		}
	}
	return base
}

// NewClient returns an *http.Client over the default transport decorated with mws.
func NewClient(timeout time.Duration, mws ...Middleware) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: Chain(http.DefaultTransport, mws...),
	}
}
