package ports

import (
	"context"

	"trendkit/internal/core/cache"
	"trendkit/internal/features/trends/domain"
)

// RealtimeSource provides the realtime trending feed.
type RealtimeSource interface {
	// FetchRealtime returns the current trending keywords for geo, newest first.
	// News articles are collected only when includeNews is set.
	FetchRealtime(ctx context.Context, geo string, includeNews bool) ([]domain.Trend, error)
}

// AnalysisSource provides keyword analysis.
type AnalysisSource interface {
	// InterestOverTime returns one interest series per keyword.
	InterestOverTime(ctx context.Context, q domain.InterestQuery) (*domain.Interest, error)
	// RelatedQueries returns the top queries related to q.Keyword.
	RelatedQueries(ctx context.Context, q domain.RelatedQuery) ([]string, error)
}

// BulkSource provides the paginated trending table.
type BulkSource interface {
	// FetchBulk returns up to limit ranked rows for the given window.
	FetchBulk(ctx context.Context, geo string, hours, limit int) ([]domain.BulkTrend, error)
}

// TrendService is the primary port consumed by the HTTP handler and the CLI.
type TrendService interface {
	Trending(ctx context.Context, q domain.TrendingQuery, opts ...cache.CallOption) (any, error)
	Bulk(ctx context.Context, q domain.BulkQuery, opts ...cache.CallOption) (*domain.BulkReport, error)
	Related(ctx context.Context, q domain.RelatedQuery, opts ...cache.CallOption) ([]string, error)
	Interest(ctx context.Context, q domain.InterestQuery, opts ...cache.CallOption) (*domain.Interest, error)
	Compare(ctx context.Context, q domain.CompareQuery, opts ...cache.CallOption) (domain.Comparison, error)
	Geos() []string
}
