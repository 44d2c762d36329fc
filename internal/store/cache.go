// ABOUTME: In-process write-through cache for rgb_config values
// ABOUTME: Caches both present values and explicit absence so unset keys don't hit the backend repeatedly

package store

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// configCacheSize bounds the cache. The node only ever stores a handful of
// config keys, so eviction is effectively never hit; a full entry just
// degrades to a backend read.
const configCacheSize = 256

// cachedValue records a config lookup result. present is false for negative
// entries (the key is known not to exist in the store).
type cachedValue struct {
	value   string
	present bool
}

// configCache is owned by a single SQLiteStore instance and lives exactly as
// long as it does. The underlying LRU is internally locked; the lock is never
// held across a backend round-trip, so a racing populate for the same key is
// last-writer-wins with both writers holding the same fact.
type configCache struct {
	entries  *lru.Cache[string, cachedValue]
	hitCount atomic.Uint64
}

func newConfigCache() *configCache {
	entries, err := lru.New[string, cachedValue](configCacheSize)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &configCache{entries: entries}
}

func (c *configCache) get(key string) (cachedValue, bool) {
	v, ok := c.entries.Get(key)
	if ok {
		c.hitCount.Add(1)
	}
	return v, ok
}

func (c *configCache) put(key string, v cachedValue) {
	c.entries.Add(key, v)
}

func (c *configCache) hits() uint64 {
	return c.hitCount.Load()
}
