// Package viewcache stores rendered dashboard payloads keyed by the
// logical path the page layer would render them under, and lets the
// mutation layer mark those paths stale after a successful write.
package viewcache

import (
	"time"

	"github.com/nimasrn/invoice-dashboard/pkg/prom"
	"github.com/nimasrn/invoice-dashboard/pkg/redis"
)

// Revalidator is what the mutation layer depends on: after a successful
// write it marks every cached render of a logical path stale.
type Revalidator interface {
	Invalidate(path string) error
}

type Cache struct {
	redis redis.RedisAdapter
	ttl   time.Duration
}

func New(adapter redis.RedisAdapter, ttl time.Duration) *Cache {
	return &Cache{
		redis: adapter,
		ttl:   ttl,
	}
}

func cacheKey(path string) string {
	return "view:" + path
}

// Get returns the cached payload for a path, or false on a miss. Redis
// faults degrade to a miss; the read path recomputes from the store.
func (c *Cache) Get(path string) ([]byte, bool) {
	payload, err := c.redis.Get(cacheKey(path))
	if err != nil {
		prom.IncViewCacheLookup("miss")
		return nil, false
	}
	prom.IncViewCacheLookup("hit")
	return payload, true
}

func (c *Cache) Put(path string, payload []byte) error {
	return c.redis.Set(cacheKey(path), payload, c.ttl)
}

// Invalidate drops every cached render under the logical path, including
// parameterized variants (e.g. /dashboard/invoices?query=x&page=2).
func (c *Cache) Invalidate(path string) error {
	keys, err := c.redis.Keys(cacheKey(path) + "*")
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.redis.Del(keys...)
}
