package cache

import (
	"context"
	"imgstudio/internal/core/port"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// SignedURLCache decorates an ObjectStorage and reuses signed urls until ttl elapses.
// ttl must stay below the signed url expiry.
type SignedURLCache struct {
	port.ObjectStorage
	urls *expirable.LRU[string, string]
}

// NewSignedURLCache wraps storage
func NewSignedURLCache(storage port.ObjectStorage, size int, ttl time.Duration) *SignedURLCache {
	return &SignedURLCache{
		ObjectStorage: storage,
		urls:          expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// SignedURL returns the cached url of uri or signs a fresh one
func (c *SignedURLCache) SignedURL(ctx context.Context, uri string) (string, error) {
	if url, ok := c.urls.Get(uri); ok {
		return url, nil
	}

	url, err := c.ObjectStorage.SignedURL(ctx, uri)
	if err != nil {
		return "", err
	}
	c.urls.Add(uri, url)
	return url, nil
}

// Delete removes the object and forgets its url
func (c *SignedURLCache) Delete(ctx context.Context, uri string) error {
	c.urls.Remove(uri)
	return c.ObjectStorage.Delete(ctx, uri)
}
