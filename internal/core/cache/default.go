package cache

import (
	"sync"
	"time"
)

var (
	defaultMu    sync.RWMutex
	defaultStore *LRU
)

// Default returns the process-wide store, creating it with DefaultMaxSize and
// DefaultTTL on first use.
func Default() *LRU {
	defaultMu.RLock()
	s := defaultStore
	defaultMu.RUnlock()
	if s != nil {
		return s
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultStore == nil {
		defaultStore = NewLRU(DefaultMaxSize, DefaultTTL)
	}
	return defaultStore
}

// Configure replaces the process-wide store with a new one. Every entry held by
// the previous store is discarded along with its counters.
func Configure(maxSize int, defaultTTL time.Duration) *LRU {
	s := NewLRU(maxSize, defaultTTL)

	defaultMu.Lock()
	defaultStore = s
	defaultMu.Unlock()
	return s
}

// Reset replaces the process-wide store with an empty one using the defaults.
func Reset() {
	Configure(DefaultMaxSize, DefaultTTL)
}

// Clear empties the process-wide store and returns how many entries it held.
func Clear() int {
	return Default().Clear()
}

// Cleanup sweeps expired entries from the process-wide store.
func Cleanup() int {
	return Default().CleanupExpired()
}

// GetStats returns the process-wide store's statistics.
func GetStats() Stats {
	return Default().Stats()
}
