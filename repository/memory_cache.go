package repository

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the default CacheRepository when no Redis is configured.
// Entries expire after ttl (zero means never) and the cache never holds
// more than maxEntries keys.
type MemoryCache struct {
	mu         sync.Mutex
	items      *gocache.Cache
	ttl        time.Duration
	maxEntries int
}

// NewMemoryCache creates a cache; maxEntries <= 0 means unbounded.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := ttl
	if ttl == gocache.NoExpiration {
		cleanup = 0
	}
	return &MemoryCache{
		items:      gocache.New(ttl, cleanup),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	val, ok := m.items.Get(key)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxEntries > 0 {
		if _, exists := m.items.Get(key); !exists && m.items.ItemCount() >= m.maxEntries {
			m.items.DeleteExpired()
			if m.items.ItemCount() >= m.maxEntries {
				m.items.Flush()
			}
		}
	}

	m.items.Set(key, value, gocache.DefaultExpiration)
	return nil
}

// Flush drops every cached entry.
func (m *MemoryCache) Flush(_ context.Context) error {
	m.mu.Lock()
	m.items.Flush()
	m.mu.Unlock()
	return nil
}

// Len reports the number of cached keys, including expired ones not yet
// cleaned up.
func (m *MemoryCache) Len() int {
	return m.items.ItemCount()
}
