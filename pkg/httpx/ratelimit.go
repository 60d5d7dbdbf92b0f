package httpx

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit delays each request until limiter allows it. Waiting honours
// the request context.
func RateLimit(limiter *rate.Limiter) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if err := limiter.Wait(req.Context()); err != nil {
				return nil, httpxErrors.NewWithCause(ErrRateLimitWait, err).
					WithDetail("method", req.Method).
					WithDetail("path", req.URL.Path)
			}
			return next.RoundTrip(req)
		})
	}
}

// PerSecond builds a limiter allowing rps requests per second with the given burst.
func PerSecond(rps float64, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
