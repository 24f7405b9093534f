package service

import (
	"context"
	"time"

	"trendkit/internal/core/cache"
	"trendkit/internal/core/logger"
	"trendkit/internal/core/metrics"
	"trendkit/internal/core/retry"
	"trendkit/internal/core/trenderr"
	"trendkit/internal/features/trends/domain"
	"trendkit/internal/features/trends/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Related lookups made for each enriched bulk row.
const (
	enrichRelatedLimit = 5
	enrichRelatedDays  = 7
)

// Config tunes a TrendService.
type Config struct {
	// Retry is the backoff policy applied to every upstream call.
	Retry retry.Config
	// BaseURL is the Google Trends origin used for explore links.
	BaseURL string
	// Store holds memoized results. Nil means cache.Default().
	Store *cache.LRU
	// Remote is an optional shared tier behind Store.
	Remote cache.Remote
	// EnrichConcurrency bounds parallel related-query lookups during enrichment.
	EnrichConcurrency int
}

// TrendService validates queries, serves them from the cache and otherwise calls
// the upstream sources under the retry policy.
type TrendService struct {
	realtime ports.RealtimeSource
	analysis ports.AnalysisSource
	bulk     ports.BulkSource
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time

	trending *cache.Memo[[]domain.Trend]
	rows     *cache.Memo[[]domain.BulkTrend]
	related  *cache.Memo[[]string]
	interest *cache.Memo[*domain.Interest]
}

// NewTrendService wires the sources behind one memo per operation.
func NewTrendService(realtime ports.RealtimeSource, analysis ports.AnalysisSource, bulk ports.BulkSource, cfg Config) *TrendService {
	if cfg.Retry == (retry.Config{}) {
		cfg.Retry = retry.DefaultConfig()
	}
	if cfg.EnrichConcurrency <= 0 {
		cfg.EnrichConcurrency = 4
	}

	s := &TrendService{
		realtime: realtime,
		analysis: analysis,
		bulk:     bulk,
		cfg:      cfg,
		logger:   logger.Named("trends"),
		now:      time.Now,
	}

	opts := []cache.MemoOption{cache.WithStore(cfg.Store), cache.WithRemote(cfg.Remote)}

	s.trending = cache.NewMemo("trending", func(ctx context.Context, a cache.Args) ([]domain.Trend, error) {
		geo, _ := a.Named["geo"].(string)
		news, _ := a.Named["news"].(bool)
		return withRetry(ctx, s, "trending", func() ([]domain.Trend, error) {
			return s.realtime.FetchRealtime(ctx, geo, news)
		})
	}, opts...)

	s.rows = cache.NewMemo("trending_bulk", func(ctx context.Context, a cache.Args) ([]domain.BulkTrend, error) {
		geo, _ := a.Named["geo"].(string)
		hours, _ := a.Named["hours"].(int)
		limit, _ := a.Named["limit"].(int)
		return withRetry(ctx, s, "trending_bulk", func() ([]domain.BulkTrend, error) {
			return s.bulk.FetchBulk(ctx, geo, hours, limit)
		})
	}, opts...)

	s.related = cache.NewMemo("related", func(ctx context.Context, a cache.Args) ([]string, error) {
		q, _ := a.Named["query"].(domain.RelatedQuery)
		return withRetry(ctx, s, "related", func() ([]string, error) {
			return s.analysis.RelatedQueries(ctx, q)
		})
	}, opts...)

	s.interest = cache.NewMemo("interest", func(ctx context.Context, a cache.Args) (*domain.Interest, error) {
		q, _ := a.Named["query"].(domain.InterestQuery)
		return withRetry(ctx, s, "interest", func() (*domain.Interest, error) {
			return s.analysis.InterestOverTime(ctx, q)
		})
	}, opts...)

	return s
}

func withRetry[T any](ctx context.Context, s *TrendService, operation string, op func() (T, error)) (T, error) {
	return retry.Do(ctx, s.cfg.Retry, op, retry.Notify(func(attempt int, err error, delay time.Duration) {
		metrics.RetryAttempts.WithLabelValues(operation, string(trenderr.KindOf(err))).Inc()
		s.logger.Warn("Retrying upstream call",
			zap.String("operation", operation),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	}))
}

// Trending returns realtime trending keywords shaped by q.Format.
func (s *TrendService) Trending(ctx context.Context, q domain.TrendingQuery, opts ...cache.CallOption) (any, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	trends, err := s.trending.Call(ctx, cache.Named("geo", q.Geo, "news", q.Format == domain.FormatFull), opts...)
	if err != nil {
		return nil, err
	}
	if len(trends) > q.Limit {
		trends = trends[:q.Limit]
	}
	return domain.Shape(trends, q.Format), nil
}

// Bulk collects the trending table, enriches it when asked and exports it when
// q.Output is set.
func (s *TrendService) Bulk(ctx context.Context, q domain.BulkQuery, opts ...cache.CallOption) (*domain.BulkReport, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if q.Output != "" {
		if err := checkOutput(q.Output, q.Enrich); err != nil {
			return nil, err
		}
	}

	cached, err := s.rows.Call(ctx, cache.Named("geo", q.Geo, "hours", q.Hours, "limit", q.Limit), opts...)
	if err != nil {
		return nil, err
	}
	// the cached slice is shared, enrichment works on a copy
	rows := make([]domain.BulkTrend, len(cached))
	copy(rows, cached)

	if q.Enrich {
		s.enrich(ctx, rows, q.Geo, opts)
	}

	report := &domain.BulkReport{
		Metadata: domain.BulkMetadata{
			RunID:       uuid.NewString(),
			Geo:         q.Geo,
			Hours:       q.Hours,
			Limit:       q.Limit,
			TotalItems:  len(rows),
			Source:      domain.BulkSourceName,
			CollectedAt: s.now().UTC(),
			Enriched:    q.Enrich,
		},
		Trends: rows,
	}

	if q.Output != "" {
		if err := Export(report, q.Output); err != nil {
			return nil, err
		}
		s.logger.Info("Bulk report exported", zap.String("path", q.Output), zap.Int("rows", len(rows)))
	}
	return report, nil
}

// enrich attaches RSS details and related queries to rows in place. Failures only
// leave fields empty.
func (s *TrendService) enrich(ctx context.Context, rows []domain.BulkTrend, geo string, opts []cache.CallOption) {
	byKeyword := map[string]domain.Trend{}
	realtime, err := s.trending.Call(ctx, cache.Named("geo", geo, "news", true), opts...)
	if err != nil {
		s.logger.Warn("Realtime feed unavailable for enrichment", zap.Error(err))
	}
	for _, t := range realtime {
		byKeyword[t.Keyword] = t
	}

	var g errgroup.Group
	g.SetLimit(s.cfg.EnrichConcurrency)

	for i := range rows {
		row := &rows[i]

		if t, ok := byKeyword[row.Keyword]; ok {
			row.Image = t.Image
			row.News = t.News
			row.ExploreLink = t.ExploreLink
		}
		if row.ExploreLink == "" {
			row.ExploreLink = domain.ExploreLink(s.cfg.BaseURL, row.Keyword, geo)
		}

		g.Go(func() error {
			q := domain.RelatedQuery{Keyword: row.Keyword, Geo: geo, Days: enrichRelatedDays, Limit: enrichRelatedLimit}
			related, err := s.related.Call(ctx, cache.Named("query", q), opts...)
			if err != nil {
				s.logger.Debug("Related queries unavailable", zap.String("keyword", row.Keyword), zap.Error(err))
				related = []string{}
			}
			row.Related = related
			return nil
		})
	}
	_ = g.Wait()
}

// Related returns the top queries related to q.Keyword.
func (s *TrendService) Related(ctx context.Context, q domain.RelatedQuery, opts ...cache.CallOption) ([]string, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	related, err := s.related.Call(ctx, cache.Named("query", q), opts...)
	if err != nil {
		return nil, err
	}
	if len(related) > q.Limit {
		related = related[:q.Limit]
	}
	return related, nil
}

// Interest returns interest over time for q.Keywords.
func (s *TrendService) Interest(ctx context.Context, q domain.InterestQuery, opts ...cache.CallOption) (*domain.Interest, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.interest.Call(ctx, cache.Named("query", q), opts...)
}

// Compare returns the mean interest of each keyword over the window.
func (s *TrendService) Compare(ctx context.Context, q domain.CompareQuery, opts ...cache.CallOption) (domain.Comparison, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	iq := domain.InterestQuery{Keywords: q.Keywords, Geo: q.Geo, Days: q.Days, Platform: q.Platform}
	in, err := s.interest.Call(ctx, cache.Named("query", iq), opts...)
	if err != nil {
		return nil, err
	}
	return domain.Compare(in, q.Keywords), nil
}

// Geos returns the country codes known to work well.
func (s *TrendService) Geos() []string {
	return domain.SupportedGeos()
}
