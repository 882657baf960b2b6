// Package infra provides shared infrastructure for the research
// pipeline: response caching and request rate limiting.
package infra

import (
	"context"
	"sync"
	"time"
)

// --- Response cache ---

type entry struct {
	value   any
	expires time.Time
}

// Cache is a thread-safe in-memory cache with per-entry expiry. The
// datasource layer uses it to avoid refetching quotes and news within
// their freshness window.
type Cache struct {
	mu   sync.RWMutex
	data map[string]entry
	ttl  time.Duration
}

// NewCache creates a cache whose entries expire after ttl by default.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		data: make(map[string]entry),
		ttl:  ttl,
	}
}

// Get returns the cached value for key, or false when the key is
// absent or its entry has expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a specific TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.data[key] = entry{value: value, expires: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.data = make(map[string]entry)
	c.mu.Unlock()
}

// PurgeExpired sweeps out expired entries. Long-running callers invoke
// it periodically to bound memory.
func (c *Cache) PurgeExpired() {
	now := time.Now()
	c.mu.Lock()
	for k, e := range c.data {
		if now.After(e.expires) {
			delete(c.data, k)
		}
	}
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// --- Rate limiter ---

// RateLimiter enforces a request budget over a trailing window. Entry
// points share one limiter per outbound API so bursts cannot exceed
// the provider's quota.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	stamps []time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
	}
}

// Allow records a request if the trailing window has budget left and
// reports whether it was admitted.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.prune(now)

	if len(rl.stamps) >= rl.limit {
		return false
	}
	rl.stamps = append(rl.stamps, now)
	return true
}

// Remaining reports how many requests the trailing window still
// admits.
func (rl *RateLimiter) Remaining() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.prune(time.Now())
	return rl.limit - len(rl.stamps)
}

// Wait blocks until a request is admitted or the context is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		if rl.Allow() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// prune drops stamps older than the window. Callers hold mu.
func (rl *RateLimiter) prune(now time.Time) {
	cutoff := now.Add(-rl.window)
	kept := rl.stamps[:0]
	for _, t := range rl.stamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	rl.stamps = kept
}
