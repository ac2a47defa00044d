package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a minimal read-through cache used in front of slow lookups,
// currently tenant billing summaries.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, expiry time.Duration)
	Delete(ctx context.Context, key string)
	Flush(ctx context.Context)
}

// inMemoryCache implements Cache using patrickmn/go-cache.
type inMemoryCache struct {
	store *gocache.Cache
}

// NewInMemoryCache creates an in-memory cache with the default expiry.
func NewInMemoryCache() Cache {
	return &inMemoryCache{
		store: gocache.New(ExpiryDefaultInMemory, ExpiryCleanupInterval),
	}
}

func (c *inMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *inMemoryCache) Set(ctx context.Context, key string, value interface{}, expiry time.Duration) {
	if expiry <= 0 {
		expiry = ExpiryDefaultInMemory
	}
	c.store.Set(key, value, expiry)
}

func (c *inMemoryCache) Delete(ctx context.Context, key string) {
	c.store.Delete(key)
}

func (c *inMemoryCache) Flush(ctx context.Context) {
	c.store.Flush()
}

// UnmarshalCacheValue converts a cached value to the requested type.
// Returns the typed value and true if the assertion succeeds.
func UnmarshalCacheValue[T any](value interface{}) (*T, bool) {
	if value == nil {
		return nil, false
	}
	if typed, ok := value.(*T); ok {
		return typed, true
	}
	return nil, false
}
