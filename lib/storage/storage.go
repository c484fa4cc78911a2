// Package storage abstracts the blob store that holds uploaded images.
package storage

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/estatehub-api/utils"
)

// ErrInvalidKey is returned for object keys that escape the store
var ErrInvalidKey = errors.New("invalid storage key")

// Provider stores and removes public objects addressed by URL
type Provider interface {
	// Put stores the content of r under key and returns its public URL
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	// Delete removes the object behind url. URLs the provider does not own
	// and objects that are already gone are not errors.
	Delete(ctx context.Context, url string) error
}

// Janitor deletes objects in the background. Failures are logged and never
// reach the request that triggered the cleanup.
type Janitor struct {
	provider Provider
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewJanitor creates a janitor deleting through provider
func NewJanitor(provider Provider) *Janitor {
	return &Janitor{provider: provider, timeout: 30 * time.Second}
}

// Purge schedules deletion of urls and returns immediately
func (j *Janitor) Purge(urls ...string) {
	if len(urls) == 0 {
		return
	}
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		for _, url := range urls {
			if url == "" {
				continue
			}
			if err := j.provider.Delete(ctx, url); err != nil {
				utils.Logger.WithError(err).WithField("url", url).Warn("Failed to delete stored object")
			}
		}
	}()
}

// Wait blocks until every scheduled purge has finished
func (j *Janitor) Wait() {
	j.wg.Wait()
}
