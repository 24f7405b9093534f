// Package metrics registers the Prometheus metrics exposed at /metrics.
package metrics

import (
	"errors"
	"time"

	"trendkit/internal/core/cache"
	"trendkit/internal/core/trenderr"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	// UpstreamRequests counts calls to Google Trends labelled by source
	// ("rss", "explore", "browser") and outcome ("success" or an error kind).
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendkit_upstream_requests_total",
			Help: "Total upstream calls to Google Trends.",
		},
		[]string{"source", "outcome"},
	)

	// UpstreamDuration observes upstream call latency in seconds.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trendkit_upstream_duration_seconds",
			Help:    "Upstream call duration in seconds.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"source"},
	)

	// RetryAttempts counts scheduled retries by operation and error kind.
	RetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendkit_retry_attempts_total",
			Help: "Total retries scheduled after a retryable failure.",
		},
		[]string{"operation", "kind"},
	)
)

// ObserveUpstream records one upstream call that started at start.
func ObserveUpstream(source string, start time.Time, err error) {
	UpstreamDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	UpstreamRequests.WithLabelValues(source, Outcome(err)).Inc()
}

// Outcome maps an error to its outcome label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	if kind := trenderr.KindOf(err); kind != "" {
		return string(kind)
	}
	return OutcomeError
}

// RegisterCacheStats exposes the counters of the store returned by stats. The
// function runs on every scrape so a reconfigured store is reported.
func RegisterCacheStats(reg prometheus.Registerer, stats func() cache.Stats) error {
	collectors := []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "trendkit_cache_hits_total",
			Help: "Cache lookups served from memory.",
		}, func() float64 { return float64(stats().Hits) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "trendkit_cache_misses_total",
			Help: "Cache lookups that found no fresh entry.",
		}, func() float64 { return float64(stats().Misses) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "trendkit_cache_entries",
			Help: "Entries currently held, expired ones included until swept.",
		}, func() float64 { return float64(stats().Size) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "trendkit_cache_max_entries",
			Help: "Capacity of the cache.",
		}, func() float64 { return float64(stats().MaxSize) }),
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}
