package sparkx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Request describes one call against the API. URI is relative to the
// configured origin, endpoint and version unless it is absolute.
type Request struct {
	Method  string
	URI     string
	Query   url.Values
	Headers map[string]string
	Body    any

	// Gzip overrides the client wide compression setting when set.
	Gzip *bool
}

// URL resolves a relative uri against origin, endpoint and API version.
// Absolute URIs are returned unchanged apart from the query.
func (c *Client) URL(uri string, query url.Values) string {
	var target string
	if isAbsolute(uri) {
		target = uri
	} else {
		segments := []string{strings.TrimRight(c.cfg.Origin, "/")}
		for _, s := range []string{c.cfg.Endpoint, c.cfg.APIVersion, uri} {
			if s = strings.Trim(s, "/"); s != "" {
				segments = append(segments, s)
			}
		}
		target = strings.Join(segments, "/")
	}

	if len(query) == 0 {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + query.Encode()
}

func isAbsolute(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.IsAbs() && u.Host != ""
}

func (r Request) gzip(clientDefault bool) bool {
	if r.Gzip != nil {
		return *r.Gzip
	}
	return clientDefault
}

// path joins escaped path segments into a relative URI.
func path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(escaped, "/")
}

func get(uri string, query url.Values) Request {
	return Request{Method: http.MethodGet, URI: uri, Query: query}
}

func post(uri string, query url.Values, body any) Request {
	return Request{Method: http.MethodPost, URI: uri, Query: query, Body: body}
}

func put(uri string, query url.Values, body any) Request {
	return Request{Method: http.MethodPut, URI: uri, Query: query, Body: body}
}

func del(uri string) Request {
	return Request{Method: http.MethodDelete, URI: uri}
}

// params builds query strings, skipping zero values.
type params url.Values

func (p params) set(key, value string) params {
	if value != "" {
		url.Values(p).Set(key, value)
	}
	return p
}

func (p params) int(key string, value int) params {
	if value > 0 {
		url.Values(p).Set(key, strconv.Itoa(value))
	}
	return p
}

func (p params) bool(key string, value bool) params {
	if value {
		url.Values(p).Set(key, "true")
	}
	return p
}

// list joins multi valued parameters with commas.
func (p params) list(key string, values []string) params {
	if len(values) > 0 {
		url.Values(p).Set(key, strings.Join(values, ","))
	}
	return p
}

func (p params) values() url.Values {
	if len(p) == 0 {
		return nil
	}
	return url.Values(p)
}
