package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrends() []Trend {
	published := time.Date(2024, 12, 16, 9, 0, 0, 0, time.UTC)
	return []Trend{
		{
			Keyword:     "환율",
			Traffic:     "5000+",
			Published:   &published,
			ExploreLink: "https://trends.google.com/trends/explore?q=%ED%99%98%EC%9C%A8&geo=KR",
			News:        []NewsArticle{{Headline: "h", Source: "s", URL: "u"}},
		},
		{Keyword: "흑백요리사2", Traffic: "1000+"},
	}
}

func TestShape_Minimal(t *testing.T) {
	assert.Equal(t, []string{"환율", "흑백요리사2"}, Shape(sampleTrends(), FormatMinimal))
	assert.Equal(t, []string{"환율", "흑백요리사2"}, Shape(sampleTrends(), ""))
}

func TestShape_Standard(t *testing.T) {
	got := Shape(sampleTrends(), FormatStandard)

	assert.Equal(t, []TrendSummary{
		{Keyword: "환율", Traffic: "5000+"},
		{Keyword: "흑백요리사2", Traffic: "1000+"},
	}, got)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"keyword":"환율","traffic":"5000+"},{"keyword":"흑백요리사2","traffic":"1000+"}]`, string(data))
}

func TestShape_Full(t *testing.T) {
	trends := sampleTrends()
	got := Shape(trends, FormatFull)
	assert.Equal(t, trends, got)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"published":"2024-12-16T09:00:00Z"`)
	assert.Contains(t, string(data), `"news":[{"headline":"h","source":"s","url":"u"}]`)
}

func TestPlatform_Property(t *testing.T) {
	assert.Equal(t, "", PlatformWeb.Property())
	assert.Equal(t, "", Platform("").Property())
	assert.Equal(t, "youtube", PlatformYouTube.Property())
}

func TestSupportedGeos(t *testing.T) {
	geos := SupportedGeos()
	assert.Len(t, geos, 24)
	assert.Equal(t, "KR", geos[0])

	geos[0] = "XX"
	assert.Equal(t, "KR", SupportedGeos()[0], "callers get a copy")
}
