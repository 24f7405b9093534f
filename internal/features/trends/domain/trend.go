package domain

import "time"

// Format selects how much of a trend is returned.
type Format string

const (
	// FormatMinimal returns keywords only.
	FormatMinimal Format = "minimal"
	// FormatStandard returns keywords with their traffic estimate.
	FormatStandard Format = "standard"
	// FormatFull returns every collected field, news included.
	FormatFull Format = "full"
)

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{string(FormatMinimal), string(FormatStandard), string(FormatFull)}
}

// Platform is the Google property an analysis query runs against.
type Platform string

const (
	PlatformWeb     Platform = "web"
	PlatformYouTube Platform = "youtube"
	PlatformImages  Platform = "images"
	PlatformNews    Platform = "news"
	PlatformShop    Platform = "froogle"
)

// Platforms lists the accepted platforms.
func Platforms() []string {
	return []string{
		string(PlatformWeb),
		string(PlatformYouTube),
		string(PlatformImages),
		string(PlatformNews),
		string(PlatformShop),
	}
}

// Property returns the gprop value sent upstream. Web search is the empty property.
func (p Platform) Property() string {
	if p == PlatformWeb || p == "" {
		return ""
	}
	return string(p)
}

// NotAvailable is the traffic value used when the source does not report one.
const NotAvailable = "N/A"

// NewsArticle is a news item attached to a trending keyword.
type NewsArticle struct {
	// Headline is the article title.
	Headline string `json:"headline"`
	// Source is the publisher name.
	Source string `json:"source"`
	// URL links to the article.
	URL string `json:"url"`
	// Image is the article thumbnail, when present.
	Image string `json:"image,omitempty"`
}

// Trend is a realtime trending keyword.
type Trend struct {
	// Keyword is the trending search term.
	Keyword string `json:"keyword"`
	// Traffic is the approximate search volume (e.g., "5000+").
	Traffic string `json:"traffic"`
	// Published is when the keyword started trending.
	Published *time.Time `json:"published,omitempty"`
	// ExploreLink opens the keyword in Google Trends explore.
	ExploreLink string `json:"explore_link,omitempty"`
	// Image is the picture Google attached to the trend.
	Image string `json:"image,omitempty"`
	// News holds up to three related articles.
	News []NewsArticle `json:"news"`
}

// TrendSummary is the standard-format view of a Trend.
type TrendSummary struct {
	Keyword string `json:"keyword"`
	Traffic string `json:"traffic"`
}

// BulkTrend is one row of the bulk trending table, optionally enriched.
type BulkTrend struct {
	Keyword     string        `json:"keyword"`
	Rank        int           `json:"rank"`
	Traffic     string        `json:"traffic"`
	Image       string        `json:"image,omitempty"`
	News        []NewsArticle `json:"news,omitempty"`
	ExploreLink string        `json:"explore_link,omitempty"`
	Related     []string      `json:"related,omitempty"`
}

// BulkMetadata describes one bulk collection run.
type BulkMetadata struct {
	RunID       string    `json:"run_id"`
	Geo         string    `json:"geo"`
	Hours       int       `json:"hours"`
	Limit       int       `json:"limit"`
	TotalItems  int       `json:"total_items"`
	Source      string    `json:"source"`
	CollectedAt time.Time `json:"collected_at"`
	Enriched    bool      `json:"enriched"`
}

// BulkSourceName is the Source recorded in BulkMetadata.
const BulkSourceName = "google_trends"

// BulkReport is the result of a bulk collection run.
type BulkReport struct {
	Metadata BulkMetadata `json:"metadata"`
	Trends   []BulkTrend  `json:"trends"`
}

// Interest is interest over time for a set of keywords, values on a 0-100 scale.
type Interest struct {
	// Dates are the sample dates formatted as YYYY-MM-DD.
	Dates []string `json:"dates"`
	// Values holds one series per keyword, aligned with Dates.
	Values map[string][]int `json:"values"`
}

// Comparison maps each keyword to its mean interest, rounded to one decimal.
type Comparison map[string]float64

// Shape reduces trends to the requested format: []string for minimal,
// []TrendSummary for standard and []Trend for full.
func Shape(trends []Trend, format Format) any {
	switch format {
	case FormatMinimal, "":
		out := make([]string, len(trends))
		for i, t := range trends {
			out[i] = t.Keyword
		}
		return out
	case FormatStandard:
		out := make([]TrendSummary, len(trends))
		for i, t := range trends {
			out[i] = TrendSummary{Keyword: t.Keyword, Traffic: t.Traffic}
		}
		return out
	default:
		return trends
	}
}
