package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalProvider keeps objects on the local filesystem under root and serves
// them below baseURL
type LocalProvider struct {
	root    string
	baseURL string
}

// NewLocalProvider creates the root directory if needed
func NewLocalProvider(root, baseURL string) (*LocalProvider, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalProvider{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Root returns the directory objects are written to
func (p *LocalProvider) Root() string {
	return p.root
}

// Put implements Provider
func (p *LocalProvider) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(p.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return p.baseURL + "/" + key, nil
}

// Delete implements Provider
func (p *LocalProvider) Delete(ctx context.Context, url string) error {
	prefix := p.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	key, err := cleanKey(strings.TrimPrefix(url, prefix))
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(p.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
