package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is the default correlation header.
const RequestIDHeader = "X-Request-ID"

// RequestID stamps a fresh uuid on requests that lack header. An empty
// header means RequestIDHeader.
func RequestID(header string) Middleware {
	if header == "" {
		header = RequestIDHeader
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(header) != "" {
				return next.RoundTrip(req)
			}
			req = req.Clone(req.Context())
			req.Header.Set(header, uuid.NewString())
			return next.RoundTrip(req)
		})
	}
}
