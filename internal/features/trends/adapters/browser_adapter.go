package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"trendkit/internal/core/logger"
	"trendkit/internal/core/metrics"
	"trendkit/internal/core/proxy"
	"trendkit/internal/core/trenderr"
	"trendkit/internal/features/trends/domain"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

const (
	browserSource = "browser"
	rowsPerPage   = 25
	maxPages      = 8
)

// Hosts the trending page needs when traffic is tunnelled through the local forwarder.
var browserAllowedHosts = []string{
	"google.com",
	"gstatic.com",
	"googleapis.com",
	"googleusercontent.com",
}

// Next-page button, labelled per UI language.
var nextPageXPaths = []string{
	"//div[contains(text(), 'Go to next page')]/../button[not(@disabled)]",
	"//div[contains(text(), '다음 페이지로 이동')]/../button[not(@disabled)]",
}

// extractRowsJS returns [{keyword, traffic}] for every body row of the trending table.
const extractRowsJS = `() => {
	const data = [];
	document.querySelectorAll('tr').forEach((row, idx) => {
		if (idx === 0) return;
		const cells = row.querySelectorAll('td');
		if (cells.length < 2) return;
		const keyword = (cells[1].innerText || '').trim();
		const traffic = cells[2] ? (cells[2].innerText || '').trim() : '';
		if (keyword) data.push({keyword: keyword, traffic: traffic});
	});
	return data;
}`

// BrowserConfig configures the headless browser scraper.
type BrowserConfig struct {
	BaseURL      string
	HostLanguage string
	// Timeout bounds one whole collection run.
	Timeout time.Duration
	// Bin is an explicit Chromium binary. Empty lets rod find or download one.
	Bin   string
	Proxy proxy.Settings
	// PageSettle is how long to let a page render after navigation or paging.
	PageSettle time.Duration
}

// BrowserAdapter collects the bulk trending table with a headless browser.
type BrowserAdapter struct {
	cfg    BrowserConfig
	logger *zap.Logger
}

// NewBrowserAdapter creates a BrowserAdapter.
func NewBrowserAdapter(cfg BrowserConfig) *BrowserAdapter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.PageSettle <= 0 {
		cfg.PageSettle = 2 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &BrowserAdapter{
		cfg:    cfg,
		logger: logger.Named("browser"),
	}
}

// scrapedRow is one table row as returned by extractRowsJS.
type scrapedRow struct {
	Keyword string `json:"keyword"`
	Traffic string `json:"traffic"`
}

// FetchBulk implements ports.BulkSource.
func (a *BrowserAdapter) FetchBulk(ctx context.Context, geo string, hours, limit int) (rows []domain.BulkTrend, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(browserSource, start, err) }()

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	browser, cleanup, err := a.launch(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	page, err := browser.Page(proto.TargetCreateTarget{URL: a.pageURL(geo, hours)})
	if err != nil {
		return nil, a.classify(ctx, nil, trenderr.Driver("failed to open trending page", err))
	}
	if err := page.WaitLoad(); err != nil {
		return nil, a.classify(ctx, nil, trenderr.External("trending page did not load", 0, err))
	}

	pages := pagesFor(limit)
	rows = make([]domain.BulkTrend, 0, limit)

	for pageNum := 0; pageNum < pages; pageNum++ {
		a.logger.Debug("Processing page", zap.Int("page", pageNum+1), zap.Int("pages", pages))

		if _, err := page.Timeout(20 * time.Second).Element("table"); err != nil {
			if pageNum == 0 {
				return nil, trenderr.Timeout(a.cfg.Timeout, rows, fmt.Errorf("trending table not found: %w", err))
			}
			if err := a.interrupted(ctx, rows, err); err != nil {
				return nil, err
			}
			break
		}
		if err := a.settle(ctx); err != nil {
			return nil, a.classify(ctx, rows, err)
		}

		res, err := page.Eval(extractRowsJS)
		if err != nil {
			return nil, a.classify(ctx, rows, trenderr.External("failed to read trending table", 0, err))
		}
		var scraped []scrapedRow
		if err := res.Value.Unmarshal(&scraped); err != nil {
			return nil, trenderr.External("unexpected trending table shape", 0, err)
		}
		rows = appendRows(rows, scraped)

		if len(rows) >= limit || pageNum == pages-1 {
			break
		}
		if !a.nextPage(ctx, page) {
			if err := a.interrupted(ctx, rows, ctx.Err()); err != nil {
				return nil, err
			}
			break
		}
	}

	if len(rows) > limit {
		rows = rows[:limit]
	}
	a.logger.Debug("Bulk trends collected", zap.String("geo", geo), zap.Int("rows", len(rows)))
	return rows, nil
}

// launch starts Chromium, routing it through the proxy when one is configured.
func (a *BrowserAdapter) launch(ctx context.Context) (*rod.Browser, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	proxyAddr := ""
	if a.cfg.Proxy.HasCredentials() {
		fwd, err := proxy.NewForwardingProxy(a.cfg.Proxy.FullURL(), browserAllowedHosts...)
		if err != nil {
			return nil, nil, trenderr.Driver("failed to create proxy forwarder", err)
		}
		proxyAddr, err = fwd.Start(ctx)
		if err != nil {
			return nil, nil, trenderr.Driver("failed to start proxy forwarder", err)
		}
		cleanups = append(cleanups, func() { _ = fwd.Stop() })
	} else if a.cfg.Proxy.HasProxy() {
		proxyAddr = a.cfg.Proxy.HostPort()
	}

	a.logger.Debug("Launching browser...",
		zap.Bool("proxy_enabled", proxyAddr != ""),
		zap.String("bin", a.cfg.Bin),
	)

	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("disable-gpu")
	if a.cfg.Bin != "" {
		l = l.Bin(a.cfg.Bin)
	}
	if proxyAddr != "" {
		l = l.Proxy(proxyAddr)
	}

	u, err := l.Launch()
	if err != nil {
		cleanup()
		return nil, nil, a.classify(ctx, nil, trenderr.Driver("failed to launch browser", err))
	}
	cleanups = append(cleanups, l.Kill)

	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		cleanup()
		return nil, nil, a.classify(ctx, nil, trenderr.Driver("failed to connect to browser", err))
	}
	cleanups = append(cleanups, func() { _ = browser.Close() })

	return browser, cleanup, nil
}

// nextPage clicks the next-page button. It reports false when there is none.
func (a *BrowserAdapter) nextPage(ctx context.Context, page *rod.Page) bool {
	if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
		return false
	}
	for _, xp := range nextPageXPaths {
		btn, err := page.Timeout(2 * time.Second).ElementX(xp)
		if err != nil {
			continue
		}
		if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
			a.logger.Debug("Next page click failed", zap.Error(err))
			return false
		}
		return a.settle(ctx) == nil
	}
	return false
}

func (a *BrowserAdapter) settle(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(a.cfg.PageSettle):
		return nil
	}
}

// classify turns a failure after the run deadline into a Timeout carrying partial rows.
func (a *BrowserAdapter) classify(ctx context.Context, partial []domain.BulkTrend, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		if partial == nil {
			partial = []domain.BulkTrend{}
		}
		return trenderr.Timeout(a.cfg.Timeout, partial, err)
	}
	return err
}

// interrupted reports a Timeout with the rows so far when the run deadline ended
// pagination, and nil when the table simply ran out of pages.
func (a *BrowserAdapter) interrupted(ctx context.Context, rows []domain.BulkTrend, err error) error {
	if ctx.Err() == nil {
		return nil
	}
	if err == nil {
		err = ctx.Err()
	}
	return a.classify(ctx, rows, err)
}

func (a *BrowserAdapter) pageURL(geo string, hours int) string {
	v := url.Values{}
	v.Set("geo", geo)
	v.Set("hours", fmt.Sprint(hours))
	if a.cfg.HostLanguage != "" {
		v.Set("hl", a.cfg.HostLanguage)
	}
	return a.cfg.BaseURL + "/trending?" + v.Encode()
}

// pagesFor returns how many table pages cover limit rows.
func pagesFor(limit int) int {
	return min(limit/rowsPerPage+1, maxPages)
}

// appendRows ranks scraped rows after the ones already collected.
func appendRows(rows []domain.BulkTrend, scraped []scrapedRow) []domain.BulkTrend {
	for _, r := range scraped {
		keyword := strings.TrimSpace(r.Keyword)
		if keyword == "" {
			continue
		}
		traffic := strings.TrimSpace(strings.SplitN(r.Traffic, "\n", 2)[0])
		if traffic == "" {
			traffic = domain.NotAvailable
		}
		rows = append(rows, domain.BulkTrend{
			Keyword: keyword,
			Rank:    len(rows) + 1,
			Traffic: traffic,
		})
	}
	return rows
}
