package cachemanager

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/rowedit/internal/log"
)

// InMemory is a Manager backed by go-cache. Entries expire after the
// configured time-to-live.
type InMemory[V any] struct {
	useCase string
	ttl     time.Duration
	cache   *gocache.Cache

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewInMemory creates a cache whose entries live for ttl and are swept every
// cleanupInterval.
func NewInMemory[V any](useCase string, ttl, cleanupInterval time.Duration) *InMemory[V] {
	return &InMemory[V]{
		useCase: useCase,
		ttl:     ttl,
		cache:   gocache.New(ttl, cleanupInterval),
	}
}

// Get returns the value stored under key.
func (c *InMemory[V]) Get(key string) (V, bool) {
	var zero V

	value, found := c.cache.Get(key)
	if !found {
		c.misses.Add(1)
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.useCase)
		c.cache.Delete(key)
		c.misses.Add(1)
		return zero, false
	}

	c.hits.Add(1)
	return v, true
}

// Set stores value under key with the default time-to-live.
func (c *InMemory[V]) Set(key string, value V) {
	c.cache.Set(key, value, c.ttl)
}

// Delete removes keys.
func (c *InMemory[V]) Delete(keys ...string) {
	for _, key := range keys {
		c.cache.Delete(key)
	}
}

// Flush removes every entry.
func (c *InMemory[V]) Flush() {
	c.cache.Flush()
	log.Debug(log.CatCache, "cache flushed", "cache", c.useCase)
}

// Stats returns hit and miss counts since creation.
func (c *InMemory[V]) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Items:  c.cache.ItemCount(),
	}
}
