// Package localfs implements media.StorageProvider on a single flat
// directory of the local filesystem. Every key is a bare file name.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/memohai/wabridge/internal/media"
)

// Provider stores media files directly under one content directory.
type Provider struct {
	// dir is the directory as configured; it prefixes returned locators.
	dir string
	// root is the absolute form of dir used for filesystem access.
	root string
}

// New creates a provider rooted at dir. The directory is created lazily on
// the first write.
func New(dir string) (*Provider, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("content directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve content dir: %w", err)
	}
	return &Provider{dir: filepath.Clean(dir), root: abs}, nil
}

// Dir returns the configured content directory.
func (p *Provider) Dir() string {
	return p.dir
}

// Put writes data to <root>/<key>, creating the directory if needed and
// truncating any existing file.
func (p *Provider) Put(_ context.Context, key string, reader io.Reader) (int64, error) {
	dest, err := p.hostPath(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(p.root, 0o755); err != nil {
		return 0, fmt.Errorf("create content dir: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	written, err := io.Copy(f, reader)
	if err != nil {
		return written, fmt.Errorf("write file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return written, fmt.Errorf("sync file: %w", err)
	}
	return written, nil
}

// Open reads a stored file.
func (p *Provider) Open(_ context.Context, key string) (io.ReadCloser, error) {
	dest, err := p.hostPath(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(dest)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// Delete removes a stored file. Missing files are not an error.
func (p *Provider) Delete(_ context.Context, key string) error {
	dest, err := p.hostPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// AccessPath returns the locator reported to users: the configured
// directory joined with the key.
func (p *Provider) AccessPath(key string) string {
	return filepath.Join(p.dir, key)
}

// hostPath converts a key into the absolute file path. Keys must be a
// single path element.
func (p *Provider) hostPath(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("storage key is required")
	}
	if key == "." || key == ".." || strings.ContainsAny(key, `/\`) || filepath.Base(key) != key {
		return "", fmt.Errorf("%w: %s", media.ErrPathTraversal, key)
	}
	return filepath.Join(p.root, key), nil
}
