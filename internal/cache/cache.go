package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/skyseek/skyseek/internal/domain"
)

// DefaultTTL is used when the caller supplies no TTL.
const DefaultTTL = 30 * time.Minute

// Origin records which stage produced a cached result set.
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginOnline Origin = "online"
)

// Entry is one cached result set.
type Entry struct {
	Results  []domain.SearchableObject
	Origin   Origin
	CachedAt time.Time
}

// ResultCache maps a trimmed query string to a previously computed
// result set. Keys keep their case and inner whitespace: the key must
// match exactly what was searched, so visually identical but
// differently encoded queries never collide.
type ResultCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]Entry
	now     func() time.Time
}

// New creates a cache with the given TTL (DefaultTTL when zero).
func New(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{
		ttl:     ttl,
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Get returns the entry for query if present and unexpired.
// Expired entries are deleted on the way out.
func (c *ResultCache) Get(query string) (Entry, bool) {
	key := strings.TrimSpace(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	if c.now().Sub(entry.CachedAt) > c.ttl {
		delete(c.entries, key)
		return Entry{}, false
	}
	return entry, true
}

// Put stores a result set for query. Empty and sub-minimum-length
// queries are never cached.
func (c *ResultCache) Put(query string, results []domain.SearchableObject, origin Origin) {
	key := strings.TrimSpace(query)
	if len(key) < domain.MinQueryLength {
		return
	}

	stored := make([]domain.SearchableObject, len(results))
	copy(stored, results)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{
		Results:  stored,
		Origin:   origin,
		CachedAt: c.now(),
	}
}

// Clear drops every entry.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}

// PruneExpired removes expired entries and reports how many were
// dropped. Called by the cache janitor.
func (c *ResultCache) PruneExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	pruned := 0
	for key, entry := range c.entries {
		if now.Sub(entry.CachedAt) > c.ttl {
			delete(c.entries, key)
			pruned++
		}
	}
	return pruned
}

// Len returns the number of stored entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
