package domain

import (
	"math"
	"net/url"
	"strings"
)

// Compare averages each keyword's interest series, rounded to one decimal.
// Keywords without a series score 0.
func Compare(in *Interest, keywords []string) Comparison {
	out := make(Comparison, len(keywords))
	for _, kw := range keywords {
		var series []int
		if in != nil {
			series = in.Values[kw]
		}
		if len(series) == 0 {
			out[kw] = 0
			continue
		}
		sum := 0
		for _, v := range series {
			sum += v
		}
		mean := float64(sum) / float64(len(series))
		out[kw] = math.Round(mean*10) / 10
	}
	return out
}

// ExploreLink builds the Google Trends explore URL of keyword.
func ExploreLink(baseURL, keyword, geo string) string {
	v := url.Values{}
	v.Set("q", keyword)
	v.Set("geo", geo)
	return strings.TrimRight(baseURL, "/") + "/trends/explore?" + v.Encode()
}
