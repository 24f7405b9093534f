package adapter

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trendkit/internal/core/logger"
	"trendkit/internal/core/metrics"
	"trendkit/internal/core/trenderr"
	"trendkit/internal/features/trends/domain"

	"go.uber.org/zap"
)

const (
	rssSource       = "rss"
	rssNamespace    = "https://trends.google.com/trending/rss"
	maxNewsPerTrend = 3
)

// RSSAdapter reads the realtime trending RSS feed.
type RSSAdapter struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewRSSAdapter creates an RSSAdapter against baseURL (e.g., "https://trends.google.com").
func NewRSSAdapter(baseURL string, client *http.Client) *RSSAdapter {
	return &RSSAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		timeout: client.Timeout,
		logger:  logger.Named("rss"),
	}
}

// rssFeed mirrors the subset of the feed we read.
type rssFeed struct {
	Items []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title         string        `xml:"title"`
	ApproxTraffic string        `xml:"https://trends.google.com/trending/rss approx_traffic"`
	PubDate       string        `xml:"pubDate"`
	Picture       string        `xml:"https://trends.google.com/trending/rss picture"`
	News          []rssNewsItem `xml:"https://trends.google.com/trending/rss news_item"`
}

type rssNewsItem struct {
	Title   string `xml:"https://trends.google.com/trending/rss news_item_title"`
	URL     string `xml:"https://trends.google.com/trending/rss news_item_url"`
	Picture string `xml:"https://trends.google.com/trending/rss news_item_picture"`
	Source  string `xml:"https://trends.google.com/trending/rss news_item_source"`
}

// FetchRealtime implements ports.RealtimeSource.
func (a *RSSAdapter) FetchRealtime(ctx context.Context, geo string, includeNews bool) (trends []domain.Trend, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(rssSource, start, err) }()

	endpoint := fmt.Sprintf("%s/trending/rss?geo=%s", a.baseURL, url.QueryEscape(geo))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build RSS request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, trenderr.FromTransport(err, a.timeout)
	}
	defer resp.Body.Close()

	if err := trenderr.FromResponse(resp.StatusCode, resp.Header); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, trenderr.FromTransport(err, a.timeout)
	}

	trends, err = a.parseFeed(body, geo, includeNews)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Realtime feed fetched",
		zap.String("geo", geo),
		zap.Int("items", len(trends)),
	)
	return trends, nil
}

func (a *RSSAdapter) parseFeed(body []byte, geo string, includeNews bool) ([]domain.Trend, error) {
	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, trenderr.External("failed to parse trending RSS feed", 0, err)
	}

	trends := make([]domain.Trend, 0, len(feed.Items))
	for _, item := range feed.Items {
		keyword := strings.TrimSpace(item.Title)
		if keyword == "" {
			continue
		}

		trend := domain.Trend{
			Keyword:     keyword,
			Traffic:     strings.TrimSpace(item.ApproxTraffic),
			ExploreLink: domain.ExploreLink(a.baseURL, keyword, geo),
			Image:       strings.TrimSpace(item.Picture),
			News:        []domain.NewsArticle{},
		}
		if trend.Traffic == "" {
			trend.Traffic = domain.NotAvailable
		}
		if published, err := time.Parse(time.RFC1123Z, strings.TrimSpace(item.PubDate)); err == nil {
			published = published.UTC()
			trend.Published = &published
		}

		if includeNews {
			for i, n := range item.News {
				if i == maxNewsPerTrend {
					break
				}
				trend.News = append(trend.News, domain.NewsArticle{
					Headline: strings.TrimSpace(n.Title),
					Source:   strings.TrimSpace(n.Source),
					URL:      strings.TrimSpace(n.URL),
					Image:    strings.TrimSpace(n.Picture),
				})
			}
		}

		trends = append(trends, trend)
	}
	return trends, nil
}
