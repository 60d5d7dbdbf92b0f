package sparkx

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Abraxas-365/sparkx/pkg/asyncx"
)

// Do sends req and decodes the results member of the response into T.
// Every failure is an *Error.
func Do[T any](ctx context.Context, c *Client, req Request) (*Response[T], error) {
	raw, e := c.roundTrip(ctx, req)
	if e != nil {
		return nil, e
	}
	if e := Normalize(raw.StatusCode, raw.Body); e != nil {
		return nil, e
	}
	resp, e := decode[T](raw, req)
	if e != nil {
		return nil, e
	}
	return resp, nil
}

// Go runs Do in its own goroutine.
func Go[T any](ctx context.Context, c *Client, req Request) *asyncx.Future[*Response[T]] {
	return asyncx.Run(func() (*Response[T], error) {
		return Do[T](ctx, c, req)
	})
}

// Request sends an arbitrary request, leaving the results undecoded.
func (c *Client) Request(ctx context.Context, req Request) (*Response[json.RawMessage], error) {
	return Do[json.RawMessage](ctx, c, req)
}

// Get sends req with the GET method.
func (c *Client) Get(ctx context.Context, req Request) (*Response[json.RawMessage], error) {
	req.Method = http.MethodGet
	return c.Request(ctx, req)
}

// Post sends req with the POST method.
func (c *Client) Post(ctx context.Context, req Request) (*Response[json.RawMessage], error) {
	req.Method = http.MethodPost
	return c.Request(ctx, req)
}

// Put sends req with the PUT method.
func (c *Client) Put(ctx context.Context, req Request) (*Response[json.RawMessage], error) {
	req.Method = http.MethodPut
	return c.Request(ctx, req)
}

// Delete sends req with the DELETE method.
func (c *Client) Delete(ctx context.Context, req Request) (*Response[json.RawMessage], error) {
	req.Method = http.MethodDelete
	return c.Request(ctx, req)
}

func call[T any](ctx context.Context, s *service, req Request) (*Response[T], error) {
	return Do[T](ctx, s.client, req)
}

func required(name, value string) error {
	if value == "" {
		return usageError("%s is required", name)
	}
	return nil
}
