package httpx

import (
	"net/http"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/logx"
)

// Logging logs one line per round trip. A nil logger uses the default one.
// The Authorization header is never logged.
func Logging(logger *logx.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			l := logger
			if l == nil {
				l = logx.GetDefaultLogger()
			}

			start := time.Now()
			resp, err := next.RoundTrip(req)

			entry := l.WithFields(logx.Fields{
				"method":      req.Method,
				"url":         redactURL(req),
				"duration_ms": time.Since(start).Milliseconds(),
			})
			if id := req.Header.Get(RequestIDHeader); id != "" {
				entry.WithField("request_id", id)
			}

			switch {
			case err != nil:
				entry.WithError(err).Warn("http request failed")
			case resp.StatusCode >= 500:
				entry.WithField("status", resp.StatusCode).Warn("http request")
			default:
				entry.WithField("status", resp.StatusCode).Debug("http request")
			}
			return resp, err
		})
	}
}

func redactURL(req *http.Request) string {
	u := *req.URL
	u.User = nil
	return u.String()
}
