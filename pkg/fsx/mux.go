package fsx

import (
	"context"
	"io"
	"net/url"
	"strings"
	"sync"
)

// Mux dispatches on the URI scheme. Paths without a scheme go to the
// fallback reader; "s3://bucket/key" goes to the reader registered for
// "s3" with the path "bucket/key".
type Mux struct {
	mu       sync.RWMutex
	fallback FileReader
	schemes  map[string]FileReader
}

var _ FileReader = (*Mux)(nil)

// NewMux creates a mux. fallback may be nil.
func NewMux(fallback FileReader) *Mux {
	return &Mux{fallback: fallback, schemes: make(map[string]FileReader)}
}

// Handle registers r for scheme.
func (m *Mux) Handle(scheme string, r FileReader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schemes[strings.ToLower(scheme)] = r
}

// Resolve returns the reader and the reader-relative path for uri.
func (m *Mux) Resolve(uri string) (FileReader, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	scheme, _, ok := strings.Cut(uri, "://")
	if !ok {
		if m.fallback == nil {
			return nil, "", fsxErrors.New(ErrNoScheme).WithDetail("uri", uri)
		}
		return m.fallback, uri, nil
	}

	r, ok := m.schemes[strings.ToLower(scheme)]
	if !ok {
		return nil, "", fsxErrors.New(ErrNoScheme).WithDetail("scheme", scheme)
	}
	u, err := url.Parse(uri)
	if err != nil || u.Host == "" || strings.Trim(u.Path, "/") == "" {
		return nil, "", fsxErrors.New(ErrInvalidPath).WithDetail("uri", uri)
	}
	return r, u.Host + u.Path, nil
}

func (m *Mux) ReadFile(ctx context.Context, uri string) ([]byte, error) {
	r, path, err := m.Resolve(uri)
	if err != nil {
		return nil, err
	}
	return r.ReadFile(ctx, path)
}

func (m *Mux) ReadFileStream(ctx context.Context, uri string) (io.ReadCloser, error) {
	r, path, err := m.Resolve(uri)
	if err != nil {
		return nil, err
	}
	return r.ReadFileStream(ctx, path)
}

func (m *Mux) Stat(ctx context.Context, uri string) (FileInfo, error) {
	r, path, err := m.Resolve(uri)
	if err != nil {
		return FileInfo{}, err
	}
	return r.Stat(ctx, path)
}

func (m *Mux) Exists(ctx context.Context, uri string) (bool, error) {
	r, path, err := m.Resolve(uri)
	if err != nil {
		return false, err
	}
	return r.Exists(ctx, path)
}
