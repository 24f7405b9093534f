package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"trendkit/internal/core/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// MemoOption configures a Memo.
type MemoOption func(*memoConfig)

type memoConfig struct {
	store  *LRU
	ttl    time.Duration
	prefix string
	remote Remote
}

// WithStore binds the memo to s instead of the process-wide Default store.
func WithStore(s *LRU) MemoOption {
	return func(c *memoConfig) {
		c.store = s
	}
}

// WithTTL sets the TTL used when the caller does not override it.
// Zero means the store's default TTL.
func WithTTL(ttl time.Duration) MemoOption {
	return func(c *memoConfig) {
		c.ttl = ttl
	}
}

// WithKeyPrefix namespaces the keys of this memo.
func WithKeyPrefix(prefix string) MemoOption {
	return func(c *memoConfig) {
		c.prefix = prefix
	}
}

// WithRemote adds a shared tier consulted after a local miss. Results are stored
// in it as JSON. A nil remote is ignored.
func WithRemote(r Remote) MemoOption {
	return func(c *memoConfig) {
		c.remote = r
	}
}

// CallOption is a per-call control consumed by Memo.Call. It never reaches the
// wrapped function and never takes part in the key.
type CallOption func(*callConfig)

type callConfig struct {
	enabled bool
	ttl     time.Duration
}

// Enabled turns caching on or off for one call. Calls are cached by default.
func Enabled(on bool) CallOption {
	return func(c *callConfig) {
		c.enabled = on
	}
}

// NoCache bypasses the cache for one call: the function runs and nothing is stored.
func NoCache() CallOption {
	return Enabled(false)
}

// TTL overrides the TTL of the entry stored by one call. Non-positive values are ignored.
func TTL(ttl time.Duration) CallOption {
	return func(c *callConfig) {
		c.ttl = ttl
	}
}

// Memo wraps a keyed operation with transparent caching. Concurrent misses on the
// same key share a single invocation, which runs detached from the callers'
// cancellation.
type Memo[T any] struct {
	name  string
	fn    func(ctx context.Context, args Args) (T, error)
	cfg   memoConfig
	group singleflight.Group
}

// NewMemo wraps fn under the logical operation name.
func NewMemo[T any](name string, fn func(ctx context.Context, args Args) (T, error), opts ...MemoOption) *Memo[T] {
	m := &Memo[T]{name: name, fn: fn}
	for _, opt := range opts {
		opt(&m.cfg)
	}
	return m
}

// Key returns the cache key a call with args would use.
func (m *Memo[T]) Key(args Args) string {
	return MakeKey(m.cfg.prefix+m.name, args.Positional, args.Named)
}

// Call returns the cached result for args when a fresh one exists, and otherwise
// runs the wrapped function and stores its result. Failures are never stored.
func (m *Memo[T]) Call(ctx context.Context, args Args, opts ...CallOption) (T, error) {
	cc := callConfig{enabled: true}
	for _, opt := range opts {
		opt(&cc)
	}

	if !cc.enabled {
		return m.fn(ctx, args)
	}

	store := m.store()
	ttl := cc.ttl
	if ttl <= 0 {
		ttl = m.cfg.ttl
	}
	if ttl <= 0 {
		ttl = store.DefaultTTL()
	}

	key := m.Key(args)
	if v, ok := store.Get(key); ok {
		if res, ok := v.(T); ok {
			return res, nil
		}
	}

	// The shared call outlives any single caller; each caller stops waiting on
	// its own context.
	shared := context.WithoutCancel(ctx)
	ch := m.group.DoChan(key, func() (any, error) {
		if res, ok := m.fromRemote(shared, key); ok {
			store.SetWithTTL(key, res, ttl)
			return res, nil
		}

		res, err := m.fn(shared, args)
		if err != nil {
			return nil, err
		}

		store.SetWithTTL(key, res, ttl)
		m.toRemote(shared, key, res, ttl)
		return res, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		res, _ := r.Val.(T)
		return res, nil
	}
}

func (m *Memo[T]) store() *LRU {
	if m.cfg.store != nil {
		return m.cfg.store
	}
	return Default()
}

func (m *Memo[T]) fromRemote(ctx context.Context, key string) (T, bool) {
	var res T
	if m.cfg.remote == nil {
		return res, false
	}

	data, err := m.cfg.remote.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Get().Warn("Remote cache read failed",
				zap.String("operation", m.name),
				zap.Error(err),
			)
		}
		return res, false
	}

	if err := json.Unmarshal(data, &res); err != nil {
		logger.Get().Warn("Discarding undecodable remote cache entry",
			zap.String("operation", m.name),
			zap.Error(err),
		)
		return res, false
	}
	return res, true
}

func (m *Memo[T]) toRemote(ctx context.Context, key string, res T, ttl time.Duration) {
	if m.cfg.remote == nil {
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		logger.Get().Warn("Result not cacheable remotely",
			zap.String("operation", m.name),
			zap.Error(err),
		)
		return
	}

	if err := m.cfg.remote.Set(ctx, key, data, ttl); err != nil {
		logger.Get().Warn("Remote cache write failed",
			zap.String("operation", m.name),
			zap.Error(err),
		)
	}
}
