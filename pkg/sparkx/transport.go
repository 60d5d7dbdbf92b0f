package sparkx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
)

type rawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        string
}

// roundTrip performs one HTTP exchange. Service failures are not inspected
// here; only transport and usage problems become errors.
func (c *Client) roundTrip(ctx context.Context, r Request) (*rawResponse, *Error) {
	if r.Method == "" {
		return nil, usageError("request method is required")
	}

	body, err := encodeBody(r.Body)
	if err != nil {
		return nil, usageError("encoding request body: %v", err)
	}

	target := c.URL(r.URI, r.Query)
	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(r.Method), target, body)
	if err != nil {
		return nil, usageError("building request: %v", err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.gzip(!c.cfg.DisableGzip) {
		req.Header.Set("Accept-Encoding", "gzip")
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") && len(data) > 0 {
		plain, err := gunzip(data)
		switch {
		case err == nil:
			data = plain
		case resp.StatusCode < http.StatusBadRequest:
			return nil, decodeError(resp.StatusCode, err)
		}
		// A failed response keeps its compressed bytes; the status alone
		// still normalizes.
	}

	return &rawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		URL:        target,
	}, nil
}

func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func encodeBody(v any) (io.Reader, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
