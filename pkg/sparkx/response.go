package sparkx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
)

// Link is a hypermedia reference returned by list and paging endpoints.
type Link struct {
	Href   string   `json:"href"`
	Rel    string   `json:"rel,omitempty"`
	Method []string `json:"method,omitempty"`
}

// Response is a decoded success envelope.
type Response[T any] struct {
	Results    T
	TotalCount int
	Links      []Link
	StatusCode int
	Headers    map[string]string

	// Request is the descriptor that produced this response.
	Request Request
	URL     string

	// Body is the raw response payload.
	Body json.RawMessage
}

type envelope struct {
	Results    json.RawMessage `json:"results"`
	TotalCount int             `json:"total_count"`
	Links      []Link          `json:"links"`
}

func decode[T any](raw *rawResponse, req Request) (*Response[T], *Error) {
	resp := &Response[T]{
		StatusCode: raw.StatusCode,
		Headers:    flattenHeader(raw.Header),
		Request:    req,
		URL:        raw.URL,
		Body:       json.RawMessage(raw.Body),
	}

	body := bytes.TrimSpace(raw.Body)
	if len(body) == 0 {
		return resp, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, decodeError(raw.StatusCode, err)
	}
	resp.TotalCount = env.TotalCount
	resp.Links = env.Links

	if len(env.Results) == 0 || bytes.Equal(env.Results, []byte("null")) {
		return resp, nil
	}
	if err := json.Unmarshal(env.Results, &resp.Results); err != nil {
		return nil, decodeError(raw.StatusCode, err)
	}
	return resp, nil
}

func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}
