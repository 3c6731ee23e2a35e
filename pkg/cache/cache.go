// Package cache provides the TTL memoization layer the report pipeline sits
// behind. Entries expire on their own or are evicted in bulk when the
// underlying records change: by exact key, by key substring, by regular
// expression, or preferably by tag, so that invalidating a whole
// report category costs O(keys carrying the tag) instead of a scan.
package cache

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"
)

// DefaultReportTTL is the lifetime of profit/partner report entries.
const DefaultReportTTL = 10 * time.Minute

// ComputeFunc produces the value for a key on a cache miss.
type ComputeFunc func(ctx context.Context) (any, error)

// Cache is the memoization contract all report consumers depend on. It is
// always constructed; contexts that do not want caching get Passthrough,
// never a nil check.
type Cache interface {
	// GetOrCompute returns the cached value for key when it is still live;
	// otherwise it runs compute, stores the result for ttl, and returns it.
	// tags index the entry for InvalidateTag.
	GetOrCompute(ctx context.Context, key string, compute ComputeFunc, ttl time.Duration, tags ...string) (any, error)

	// Get returns the live value for key, if any.
	Get(key string) (any, bool)

	// Set stores value under key for ttl.
	Set(key string, value any, ttl time.Duration, tags ...string)

	// Invalidate removes the exact key and every key containing it as a
	// substring. Returns the number of entries removed.
	Invalidate(keyOrSubstring string) int

	// InvalidateRegexp removes every key matching re.
	InvalidateRegexp(re *regexp.Regexp) int

	// InvalidateTag removes every entry carrying tag.
	InvalidateTag(tag string) int

	// Clear drops everything.
	Clear()
}

type entry struct {
	value     any
	storedAt  time.Time
	expiresAt time.Time
	tags      []string
}

// MemoryCache is the in-process Cache implementation. Unlike the cooperative
// single-threaded environment this design comes from, a Go server is
// concurrent, so all state is mutex-guarded. The compute function runs
// outside the lock; concurrent misses on the same key may both compute, the
// last writer wins. Callers that cannot afford that check the cache first.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*entry
	byTag   map[string]map[string]struct{}

	maxSize int
	now     func() time.Time

	hits   uint64
	misses uint64

	metrics *Metrics

	janitorStop chan struct{}
	janitorOnce sync.Once
}

// Option configures a MemoryCache.
type Option func(*MemoryCache)

// WithMaxSize caps the number of entries; the oldest entry is evicted when
// the cap is reached. Zero means unbounded.
func WithMaxSize(n int) Option {
	return func(c *MemoryCache) { c.maxSize = n }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *MemoryCache) { c.now = now }
}

// WithMetrics wires hit/miss counters.
func WithMetrics(m *Metrics) Option {
	return func(c *MemoryCache) { c.metrics = m }
}

// WithJanitor starts a background sweep of expired entries every interval.
// Call Stop to halt it.
func WithJanitor(interval time.Duration) Option {
	return func(c *MemoryCache) {
		c.janitorStop = make(chan struct{})
		go c.janitor(interval)
	}
}

// NewMemoryCache creates a cache with the given options.
func NewMemoryCache(opts ...Option) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]*entry),
		byTag:   make(map[string]map[string]struct{}),
		maxSize: 100,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Cache = (*MemoryCache)(nil)

func (c *MemoryCache) GetOrCompute(ctx context.Context, key string, compute ComputeFunc, ttl time.Duration, tags ...string) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	value, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	c.Set(key, value, ttl, tags...)
	return value, nil
}

func (c *MemoryCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.recordMiss()
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		c.removeLocked(key)
		c.recordMiss()
		return nil, false
	}
	c.recordHit()
	return e.value, true
}

func (c *MemoryCache) Set(key string, value any, ttl time.Duration, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}

	now := c.now()
	c.entries[key] = &entry{
		value:     value,
		storedAt:  now,
		expiresAt: now.Add(ttl),
		tags:      tags,
	}
	for _, tag := range tags {
		keys, ok := c.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

func (c *MemoryCache) Invalidate(keyOrSubstring string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if key == keyOrSubstring || strings.Contains(key, keyOrSubstring) {
			c.removeLocked(key)
			removed++
		}
	}
	return removed
}

func (c *MemoryCache) InvalidateRegexp(re *regexp.Regexp) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if re.MatchString(key) {
			c.removeLocked(key)
			removed++
		}
	}
	return removed
}

func (c *MemoryCache) InvalidateTag(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys, ok := c.byTag[tag]
	if !ok {
		return 0
	}
	removed := 0
	for key := range keys {
		c.removeLocked(key)
		removed++
	}
	return removed
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.byTag = make(map[string]map[string]struct{})
	c.hits = 0
	c.misses = 0
}

// Stats reports cache effectiveness.
type Stats struct {
	Size   int
	Hits   uint64
	Misses uint64
}

func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Size: len(c.entries), Hits: c.hits, Misses: c.misses}
}

// Stop halts the janitor goroutine, if one was started.
func (c *MemoryCache) Stop() {
	if c.janitorStop == nil {
		return
	}
	c.janitorOnce.Do(func() { close(c.janitorStop) })
}

func (c *MemoryCache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.janitorStop:
			return
		}
	}
}

func (c *MemoryCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			c.removeLocked(key)
		}
	}
}

func (c *MemoryCache) removeLocked(key string) {
	e, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	for _, tag := range e.tags {
		if keys, ok := c.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.byTag, tag)
			}
		}
	}
}

func (c *MemoryCache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, e := range c.entries {
		if oldestKey == "" || e.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.storedAt
		}
	}
	if oldestKey != "" {
		c.removeLocked(oldestKey)
	}
}

func (c *MemoryCache) recordHit() {
	c.hits++
	if c.metrics != nil {
		c.metrics.Hits.Inc()
	}
}

func (c *MemoryCache) recordMiss() {
	c.misses++
	if c.metrics != nil {
		c.metrics.Misses.Inc()
	}
}

// Passthrough is a no-op Cache: every GetOrCompute computes. It lets callers
// keep a mandatory cache dependency while disabling caching via
// configuration rather than runtime feature detection.
type Passthrough struct{}

var _ Cache = Passthrough{}

func (Passthrough) GetOrCompute(ctx context.Context, _ string, compute ComputeFunc, _ time.Duration, _ ...string) (any, error) {
	return compute(ctx)
}

func (Passthrough) Get(string) (any, bool) { return nil, false }
func (Passthrough) Set(string, any, time.Duration, ...string) {}
func (Passthrough) Invalidate(string) int { return 0 }
func (Passthrough) InvalidateRegexp(*regexp.Regexp) int { return 0 }
func (Passthrough) InvalidateTag(string) int { return 0 }
func (Passthrough) Clear() {}
