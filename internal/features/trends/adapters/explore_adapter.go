package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"trendkit/internal/core/logger"
	"trendkit/internal/core/metrics"
	"trendkit/internal/core/trenderr"
	"trendkit/internal/features/trends/domain"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const exploreSource = "explore"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Widget ids in the explore response.
const (
	widgetTimeseries     = "TIMESERIES"
	widgetRelatedQueries = "RELATED_QUERIES"
)

// ExploreConfig configures the explore API client.
type ExploreConfig struct {
	BaseURL           string
	HostLanguage      string
	TZOffset          int
	RequestsPerSecond float64
}

// ExploreAdapter talks to the JSON API behind the Google Trends explore page.
type ExploreAdapter struct {
	cfg      ExploreConfig
	client   *http.Client
	limiter  *rate.Limiter
	timeout  time.Duration
	warmOnce sync.Once
	logger   *zap.Logger
}

// NewExploreAdapter creates an ExploreAdapter. The client is copied and given a
// cookie jar if it has none, since the API rejects requests without session cookies.
func NewExploreAdapter(cfg ExploreConfig, client *http.Client) *ExploreAdapter {
	c := *client
	if c.Jar == nil {
		jar, _ := cookiejar.New(nil)
		c.Jar = jar
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &ExploreAdapter{
		cfg:     cfg,
		client:  &c,
		limiter: rate.NewLimiter(limit, 1),
		timeout: client.Timeout,
		logger:  logger.Named("explore"),
	}
}

type exploreResponse struct {
	Widgets []widget `json:"widgets"`
}

type widget struct {
	ID      string              `json:"id"`
	Token   string              `json:"token"`
	Request jsoniter.RawMessage `json:"request"`
}

type multilineResponse struct {
	Default struct {
		TimelineData []struct {
			Time      string `json:"time"`
			Value     []int  `json:"value"`
			IsPartial bool   `json:"isPartial"`
		} `json:"timelineData"`
	} `json:"default"`
}

type relatedResponse struct {
	Default struct {
		RankedList []struct {
			RankedKeyword []struct {
				Query string `json:"query"`
				Value int    `json:"value"`
			} `json:"rankedKeyword"`
		} `json:"rankedList"`
	} `json:"default"`
}

type comparisonItem struct {
	Keyword string `json:"keyword"`
	Time    string `json:"time"`
	Geo     string `json:"geo"`
}

type exploreRequest struct {
	ComparisonItem []comparisonItem `json:"comparisonItem"`
	Category       int              `json:"category"`
	Property       string           `json:"property"`
}

// InterestOverTime implements ports.AnalysisSource.
func (a *ExploreAdapter) InterestOverTime(ctx context.Context, q domain.InterestQuery) (out *domain.Interest, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(exploreSource, start, err) }()

	w, err := a.widget(ctx, q.Keywords, q.Geo, q.Days, q.Platform, widgetTimeseries)
	if err != nil {
		return nil, err
	}

	var resp multilineResponse
	if err := a.getJSON(ctx, "/trends/api/widgetdata/multiline", w, &resp); err != nil {
		return nil, err
	}

	out = &domain.Interest{
		Dates:  make([]string, 0, len(resp.Default.TimelineData)),
		Values: make(map[string][]int, len(q.Keywords)),
	}
	for _, kw := range q.Keywords {
		out.Values[kw] = []int{}
	}

	for _, point := range resp.Default.TimelineData {
		secs, err := strconv.ParseInt(point.Time, 10, 64)
		if err != nil {
			return nil, trenderr.External("unexpected timeline timestamp", 0, err)
		}
		out.Dates = append(out.Dates, time.Unix(secs, 0).UTC().Format("2006-01-02"))
		for i, kw := range q.Keywords {
			v := 0
			if i < len(point.Value) {
				v = point.Value[i]
			}
			out.Values[kw] = append(out.Values[kw], v)
		}
	}
	return out, nil
}

// RelatedQueries implements ports.AnalysisSource. Only the "top" ranking is returned.
func (a *ExploreAdapter) RelatedQueries(ctx context.Context, q domain.RelatedQuery) (out []string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(exploreSource, start, err) }()

	w, err := a.widget(ctx, []string{q.Keyword}, q.Geo, q.Days, domain.PlatformWeb, widgetRelatedQueries)
	if err != nil {
		return nil, err
	}

	var resp relatedResponse
	if err := a.getJSON(ctx, "/trends/api/widgetdata/relatedsearches", w, &resp); err != nil {
		return nil, err
	}

	out = []string{}
	if len(resp.Default.RankedList) == 0 {
		return out, nil
	}
	for _, rk := range resp.Default.RankedList[0].RankedKeyword {
		if len(out) == q.Limit {
			break
		}
		out = append(out, rk.Query)
	}
	return out, nil
}

// Timeframe maps a day count to the explore time window.
func Timeframe(days int) string {
	switch {
	case days <= 1:
		return "now 1-d"
	case days <= 7:
		return "now 7-d"
	case days <= 30:
		return "today 1-m"
	case days <= 90:
		return "today 3-m"
	default:
		return "today 12-m"
	}
}

// widget runs the explore call and returns the widget with the given id.
func (a *ExploreAdapter) widget(ctx context.Context, keywords []string, geo string, days int, platform domain.Platform, id string) (*widget, error) {
	a.warmUp(ctx)

	tf := Timeframe(days)
	req := exploreRequest{Property: platform.Property()}
	for _, kw := range keywords {
		req.ComparisonItem = append(req.ComparisonItem, comparisonItem{Keyword: kw, Time: tf, Geo: geo})
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode explore request: %w", err)
	}

	var resp exploreResponse
	if err := a.get(ctx, "/trends/api/explore", url.Values{"req": {string(payload)}}, &resp); err != nil {
		return nil, err
	}

	for i := range resp.Widgets {
		if resp.Widgets[i].ID == id {
			return &resp.Widgets[i], nil
		}
	}
	return nil, trenderr.External(fmt.Sprintf("explore response has no %s widget", id), 0, nil)
}

func (a *ExploreAdapter) getJSON(ctx context.Context, path string, w *widget, out any) error {
	return a.get(ctx, path, url.Values{
		"req":   {string(w.Request)},
		"token": {w.Token},
	}, out)
}

// get performs one throttled GET and decodes the JSON after the anti-hijacking prefix.
func (a *ExploreAdapter) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return trenderr.FromTransport(err, a.timeout)
	}

	params.Set("hl", a.cfg.HostLanguage)
	params.Set("tz", strconv.Itoa(a.cfg.TZOffset))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build explore request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return trenderr.FromTransport(err, a.timeout)
	}
	defer resp.Body.Close()

	if err := trenderr.FromResponse(resp.StatusCode, resp.Header); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return trenderr.FromTransport(err, a.timeout)
	}

	if err := json.Unmarshal(stripPrefix(body), out); err != nil {
		return trenderr.External("failed to decode Google Trends response", 0, err)
	}
	return nil
}

// warmUp fetches the home page once so the jar holds the session cookie.
func (a *ExploreAdapter) warmUp(ctx context.Context) {
	a.warmOnce.Do(func() {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"/?geo=US", nil)
		if err != nil {
			return
		}
		resp, err := a.client.Do(req)
		if err != nil {
			a.logger.Warn("Session cookie warm-up failed", zap.Error(err))
			return
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	})
}

// stripPrefix drops the ")]}'" guard Google prepends to JSON bodies.
func stripPrefix(body []byte) []byte {
	if i := bytes.IndexAny(body, "{["); i > 0 && bytes.HasPrefix(body, []byte(")]}'")) {
		return body[i:]
	}
	return body
}
