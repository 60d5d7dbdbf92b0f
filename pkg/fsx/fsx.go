// Package fsx reads attachment files from local disk or object storage.
package fsx

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/errx"
)

var fsxErrors = errx.NewRegistry("FSX")

var (
	ErrNotFound    = fsxErrors.Register("NOT_FOUND", errx.TypeNotFound, 404, "File not found")
	ErrRead        = fsxErrors.Register("READ", errx.TypeExternal, 500, "Failed to read file")
	ErrInvalidPath = fsxErrors.Register("INVALID_PATH", errx.TypeValidation, 400, "Invalid file path")
	ErrNoScheme    = fsxErrors.Register("NO_SCHEME", errx.TypeValidation, 400, "No reader registered for scheme")
)

// NotFound builds the error backends return for a missing file.
func NotFound(path string) *errx.Error {
	return fsxErrors.New(ErrNotFound).WithDetail("path", path)
}

// ReadError wraps a backend failure.
func ReadError(path string, cause error) *errx.Error {
	return fsxErrors.NewWithCause(ErrRead, cause).WithDetail("path", path)
}

// InvalidPath rejects a path the backend refuses to serve.
func InvalidPath(path string) *errx.Error {
	return fsxErrors.New(ErrInvalidPath).WithDetail("path", path)
}

// FileInfo represents information about a file
type FileInfo struct {
	Name        string            // Base name of the file
	Size        int64             // File size in bytes
	ModTime     time.Time         // Modification time
	ContentType string            // MIME type (when available)
	Metadata    map[string]string // Additional metadata
}

// FileReader provides read-only operations
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
	Stat(ctx context.Context, path string) (FileInfo, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// DetectContentType guesses a MIME type from the file extension.
func DetectContentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
