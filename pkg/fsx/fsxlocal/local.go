package fsxlocal

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/sparkx/pkg/fsx"
)

// LocalFileSystem implements fsx.FileReader over a directory on local disk.
type LocalFileSystem struct {
	basePath string // Root directory for all files
}

var _ fsx.FileReader = (*LocalFileSystem)(nil)

// NewLocalFileSystem creates a reader rooted at basePath. An empty basePath
// means the working directory.
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	if basePath == "" {
		basePath = "."
	}
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fsx.InvalidPath(basePath)
	}
	return &LocalFileSystem{basePath: absPath}, nil
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	fullPath, err := l.fullPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, wrap(path, err)
	}
	return data, nil
}

func (l *LocalFileSystem) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	fullPath, err := l.fullPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, wrap(path, err)
	}
	return file, nil
}

func (l *LocalFileSystem) Stat(ctx context.Context, path string) (fsx.FileInfo, error) {
	fullPath, err := l.fullPath(path)
	if err != nil {
		return fsx.FileInfo{}, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		return fsx.FileInfo{}, wrap(path, err)
	}
	if info.IsDir() {
		return fsx.FileInfo{}, fsx.InvalidPath(path)
	}

	return fsx.FileInfo{
		Name:        info.Name(),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: fsx.DetectContentType(fullPath),
	}, nil
}

func (l *LocalFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	fullPath, err := l.fullPath(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, wrap(path, err)
	}
	return true, nil
}

// BasePath returns the root directory.
func (l *LocalFileSystem) BasePath() string {
	return l.basePath
}

// fullPath resolves path under the root. Absolute paths are accepted when
// they stay inside it.
func (l *LocalFileSystem) fullPath(path string) (string, error) {
	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(l.basePath, path)
	}
	full = filepath.Clean(full)

	rel, err := filepath.Rel(l.basePath, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fsx.InvalidPath(path)
	}
	return full, nil
}

func wrap(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fsx.NotFound(path)
	}
	return fsx.ReadError(path, err)
}
