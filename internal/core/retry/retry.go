// Package retry re-executes failed upstream calls under a capped exponential backoff.
package retry

import (
	"context"
	"errors"
	"math"
	"time"

	"trendkit/internal/core/trenderr"

	"github.com/cenkalti/backoff/v4"
)

// Defaults used by DefaultConfig.
const (
	DefaultMaxRetries      = 3
	DefaultBaseDelay       = time.Second
	DefaultMaxDelay        = 60 * time.Second
	DefaultExponentialBase = 2.0
)

// Config describes the backoff schedule. It is a value type and is never mutated.
type Config struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BaseDelay is the wait before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps every individual wait.
	MaxDelay time.Duration
	// ExponentialBase is the growth factor between consecutive waits. Must be > 1.
	ExponentialBase float64
}

// DefaultConfig returns 3 retries starting at 1s, doubling, capped at 60s.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      DefaultMaxRetries,
		BaseDelay:       DefaultBaseDelay,
		MaxDelay:        DefaultMaxDelay,
		ExponentialBase: DefaultExponentialBase,
	}
}

// Delay returns the wait before retry number attempt (zero-indexed):
// min(BaseDelay * ExponentialBase^attempt, MaxDelay).
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := float64(c.BaseDelay) * math.Pow(c.ExponentialBase, float64(attempt))
	if math.IsInf(d, 0) || math.IsNaN(d) || d >= float64(c.MaxDelay) {
		return c.MaxDelay
	}
	return time.Duration(d)
}

// schedule is a backoff.BackOff that yields Config.Delay(0..MaxRetries-1) and then stops.
type schedule struct {
	cfg     Config
	attempt int
}

func (s *schedule) NextBackOff() time.Duration {
	if s.attempt >= s.cfg.MaxRetries {
		return backoff.Stop
	}
	d := s.cfg.Delay(s.attempt)
	s.attempt++
	return d
}

func (s *schedule) Reset() {
	s.attempt = 0
}

// NotifyFunc observes a scheduled retry: the zero-indexed retry number, the failure
// that caused it and the wait before the next attempt.
type NotifyFunc func(attempt int, err error, delay time.Duration)

type options struct {
	retryable []error
	notify    NotifyFunc
	timer     backoff.Timer
}

// Option customises a single Do call.
type Option func(*options)

// On replaces the retryable set. Failures match through errors.Is, so the
// trenderr kind sentinels select whole categories.
func On(kinds ...error) Option {
	return func(o *options) {
		o.retryable = kinds
	}
}

// Notify registers a callback invoked before each wait.
func Notify(fn NotifyFunc) Option {
	return func(o *options) {
		o.notify = fn
	}
}

func withTimer(t backoff.Timer) Option {
	return func(o *options) {
		o.timer = t
	}
}

// Do runs op until it succeeds, fails with a non-retryable error, or the retry
// budget is spent. Only rate limits are retryable unless On says otherwise.
// Non-retryable failures return at once without waiting. Cancelling ctx interrupts
// a wait between attempts but never an attempt in progress.
func Do[T any](ctx context.Context, cfg Config, op func() (T, error), opts ...Option) (T, error) {
	o := options{retryable: []error{trenderr.ErrRateLimit}}
	for _, opt := range opts {
		opt(&o)
	}

	attempt := 0
	operation := func() (T, error) {
		res, err := op()
		if err != nil && !o.isRetryable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}

	var notify backoff.Notify
	if o.notify != nil {
		notify = func(err error, d time.Duration) {
			o.notify(attempt, err, d)
			attempt++
		}
	}

	b := backoff.WithContext(&schedule{cfg: cfg}, ctx)
	return backoff.RetryNotifyWithTimerAndData(operation, b, notify, o.timer)
}

func (o *options) isRetryable(err error) bool {
	for _, kind := range o.retryable {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
