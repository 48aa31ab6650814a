// Package scorecache shares unit scores between traversals and callers.
package scorecache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// Cache is a process-wide ports.ScoreCache. Entries expire after the
// configured TTL; a zero TTL keeps them until Flush.
type Cache struct {
	items *gocache.Cache
}

// Ensure Cache implements ScoreCache
var _ ports.ScoreCache = (*Cache)(nil)

// New creates a cache whose entries live for ttl
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return &Cache{items: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Cache{items: gocache.New(ttl, 2*ttl)}
}

func cacheKey(key ports.ScoreKey) string {
	return string(key.Method) + "\x00" + key.Activity.String()
}

// Get returns a cached unit score
func (c *Cache) Get(key ports.ScoreKey) (float64, bool) {
	v, ok := c.items.Get(cacheKey(key))
	if !ok {
		return 0, false
	}
	score, ok := v.(float64)
	return score, ok
}

// Add stores a unit score unless one is already cached
func (c *Cache) Add(key ports.ScoreKey, value float64) bool {
	return c.items.Add(cacheKey(key), value, gocache.DefaultExpiration) == nil
}

// Len returns the number of cached scores, expired ones included until
// the janitor runs
func (c *Cache) Len() int {
	return c.items.ItemCount()
}

// Flush drops every cached score
func (c *Cache) Flush() {
	c.items.Flush()
}

// Provider wraps a UnitScoreProvider so concurrent callers asking for the
// same score share one solve and later callers hit the cache
type Provider struct {
	next  ports.UnitScoreProvider
	cache *Cache
	group singleflight.Group
}

// Ensure Provider implements UnitScoreProvider
var _ ports.UnitScoreProvider = (*Provider)(nil)

// NewProvider creates a caching provider in front of next
func NewProvider(next ports.UnitScoreProvider, cache *Cache) *Provider {
	return &Provider{next: next, cache: cache}
}

// UnitScore returns the cached score or computes it once
func (p *Provider) UnitScore(key domain.Key, method domain.Method) (float64, error) {
	sk := ports.ScoreKey{Activity: key, Method: method}
	if v, ok := p.cache.Get(sk); ok {
		return v, nil
	}

	v, err, _ := p.group.Do(cacheKey(sk), func() (any, error) {
		// Double-check cache inside singleflight
		if v, ok := p.cache.Get(sk); ok {
			return v, nil
		}
		score, err := p.next.UnitScore(key, method)
		if err != nil {
			return nil, err
		}
		p.cache.Add(sk, score)
		return score, nil
	})
	if err != nil {
		return 0, err
	}

	score, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected type from score group: got %T", v)
	}
	return score, nil
}
