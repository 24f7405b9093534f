package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"trendkit/internal/features/trends/domain"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printTrending(w io.Writer, geo string, res any) error {
	switch trends := res.(type) {
	case []string:
		for i, kw := range trends {
			fmt.Fprintf(w, "%d. %s\n", i+1, kw)
		}
		return nil
	case []domain.TrendSummary:
		fmt.Fprintf(w, "Trending in %s\n", geo)
		tw := newTable(w)
		fmt.Fprintln(tw, "#\tKEYWORD\tTRAFFIC")
		for i, t := range trends {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, t.Keyword, t.Traffic)
		}
		return tw.Flush()
	case []domain.Trend:
		fmt.Fprintf(w, "Trending in %s\n", geo)
		tw := newTable(w)
		fmt.Fprintln(tw, "#\tKEYWORD\tTRAFFIC\tNEWS")
		for i, t := range trends {
			headline := ""
			if len(t.News) > 0 {
				headline = t.News[0].Headline
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, t.Keyword, t.Traffic, headline)
		}
		return tw.Flush()
	default:
		return writeJSON(w, res)
	}
}

func printBulk(w io.Writer, report *domain.BulkReport) error {
	m := report.Metadata
	fmt.Fprintf(w, "Bulk trends in %s (last %dh, %d items)\n", m.Geo, m.Hours, m.TotalItems)

	tw := newTable(w)
	if m.Enriched {
		fmt.Fprintln(tw, "RANK\tKEYWORD\tTRAFFIC\tNEWS\tRELATED")
		for _, t := range report.Trends {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", t.Rank, t.Keyword, t.Traffic, len(t.News), len(t.Related))
		}
	} else {
		fmt.Fprintln(tw, "RANK\tKEYWORD\tTRAFFIC")
		for _, t := range report.Trends {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", t.Rank, t.Keyword, t.Traffic)
		}
	}
	return tw.Flush()
}

func printComparison(w io.Writer, days int, cmp domain.Comparison) error {
	fmt.Fprintf(w, "Keyword comparison (%d days)\n", days)
	tw := newTable(w)
	fmt.Fprintln(tw, "KEYWORD\tAVG INTEREST")
	for _, kw := range sortedComparison(cmp) {
		fmt.Fprintf(tw, "%s\t%.1f\n", kw, cmp[kw])
	}
	return tw.Flush()
}

func printInterest(w io.Writer, days int, keywords []string, in *domain.Interest) error {
	fmt.Fprintf(w, "Interest over time (%d days)\n", days)
	fmt.Fprintf(w, "Data points: %d\n", len(in.Dates))

	cmp := domain.Compare(in, keywords)
	tw := newTable(w)
	fmt.Fprintln(tw, "KEYWORD\tAVG\tMIN\tMAX")
	for _, kw := range keywords {
		lo, hi := 0, 0
		for i, v := range in.Values[kw] {
			if i == 0 || v < lo {
				lo = v
			}
			if i == 0 || v > hi {
				hi = v
			}
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%d\t%d\n", kw, cmp[kw], lo, hi)
	}
	return tw.Flush()
}
