// Package cache provides the in-process result cache for trend operations: a
// thread-safe LRU store with per-entry expiry, hit/miss accounting, a generic
// memoization wrapper and an optional shared Redis tier.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Defaults for the process-wide store.
const (
	DefaultMaxSize = 1000
	DefaultTTL     = 5 * time.Minute
)

type entry struct {
	key       string
	value     any
	createdAt time.Time
	expiresAt time.Time
}

func (e *entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// LRU is a bounded key-value store ordered by recency of access. All methods are
// safe for concurrent use; each runs as a single critical section.
type LRU struct {
	mu         sync.Mutex
	maxSize    int
	defaultTTL time.Duration
	items      map[string]*list.Element
	order      *list.List // front = most recently used
	hits       uint64
	misses     uint64
	now        func() time.Time
}

// Option configures an LRU.
type Option func(*LRU)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *LRU) {
		c.now = now
	}
}

// NewLRU creates a store holding at most maxSize entries. Non-positive arguments
// fall back to DefaultMaxSize and DefaultTTL.
func NewLRU(maxSize int, defaultTTL time.Duration, opts ...Option) *LRU {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}

	c := &LRU{
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		items:      make(map[string]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxSize returns the configured capacity.
func (c *LRU) MaxSize() int {
	return c.maxSize
}

// DefaultTTL returns the TTL applied by Set.
func (c *LRU) DefaultTTL() time.Duration {
	return c.defaultTTL
}

// Get returns the value for key. A missing or expired key counts as a miss and an
// expired entry is dropped on the way out.
func (c *LRU) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}

	e := elem.Value.(*entry)
	if e.expired(c.now()) {
		c.removeElement(elem)
		c.misses++
		return nil, false
	}

	c.order.MoveToFront(elem)
	c.hits++
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *LRU) Set(key string, value any) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key for ttl. A non-positive ttl produces an entry
// that is already expired. Replacing an existing key never evicts another entry,
// even at capacity; only inserting a new key does.
func (c *LRU) SetWithTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e := &entry{
		key:       key,
		value:     value,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
	if ttl <= 0 {
		e.expiresAt = now.Add(-time.Nanosecond)
	}

	if elem, ok := c.items[key]; ok {
		elem.Value = e
		c.order.MoveToFront(elem)
		return
	}

	for c.order.Len() >= c.maxSize {
		c.removeElement(c.order.Back())
	}

	c.items[key] = c.order.PushFront(e)
}

// Delete removes key and reports whether it was present.
func (c *LRU) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeElement(elem)
	return true
}

// Clear drops every entry and returns how many there were. Counters are kept.
func (c *LRU) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.order.Len()
	c.items = make(map[string]*list.Element)
	c.order.Init()
	return n
}

// CleanupExpired sweeps all expired entries and returns how many were removed.
func (c *LRU) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry).expired(now) {
			c.removeElement(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the counters and current size.
func (c *LRU) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Size:    c.order.Len(),
		MaxSize: c.maxSize,
	}
}

// ResetStats zeroes hits and misses. Stored entries are untouched.
func (c *LRU) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hits = 0
	c.misses = 0
}

func (c *LRU) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*entry).key)
}
