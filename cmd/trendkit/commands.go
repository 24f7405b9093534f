package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"trendkit/internal/features/trends/domain"

	"github.com/spf13/cobra"
)

func newTrendCmd(r *runner) *cobra.Command {
	q := domain.NewTrendingQuery()
	var format string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Get realtime trending keywords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q.Geo = r.flags.geo
			q.Format = domain.Format(format)
			return r.run(cmd, func(ctx context.Context, s *session) error {
				res, err := s.trends.Trending(ctx, q, r.flags.callOptions()...)
				if err != nil {
					return err
				}
				if r.flags.json {
					return writeJSON(cmd.OutOrStdout(), res)
				}
				return printTrending(cmd.OutOrStdout(), q.Geo, res)
			})
		},
	}
	cmd.Flags().IntVarP(&q.Limit, "limit", "n", q.Limit, "Number of results")
	cmd.Flags().StringVarP(&format, "format", "f", string(q.Format), "Output format: "+strings.Join(domain.Formats(), ", "))
	return cmd
}

func newBulkCmd(r *runner) *cobra.Command {
	q := domain.NewBulkQuery()

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Get bulk trending keywords with a headless browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q.Geo = r.flags.geo
			return r.run(cmd, func(ctx context.Context, s *session) error {
				report, err := s.trends.Bulk(ctx, q, r.flags.callOptions()...)
				if err != nil {
					return err
				}
				if r.flags.json {
					if q.Enrich {
						return writeJSON(cmd.OutOrStdout(), report)
					}
					return writeJSON(cmd.OutOrStdout(), report.Trends)
				}
				return printBulk(cmd.OutOrStdout(), report)
			})
		},
	}
	cmd.Flags().IntVar(&q.Hours, "hours", q.Hours, "Time window: "+strings.Join(domain.BulkHours(), ", "))
	cmd.Flags().IntVarP(&q.Limit, "limit", "n", q.Limit, "Number of results")
	cmd.Flags().BoolVar(&q.Enrich, "enrich", false, "Attach news, images and related queries")
	cmd.Flags().StringVarP(&q.Output, "output", "o", "", "Save to a .json or .csv file")
	return cmd
}

func newRelCmd(r *runner) *cobra.Command {
	q := domain.NewRelatedQuery("")

	cmd := &cobra.Command{
		Use:   "rel <keyword>",
		Short: "Get related search queries for a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Keyword = args[0]
			q.Geo = r.flags.geo
			return r.run(cmd, func(ctx context.Context, s *session) error {
				related, err := s.trends.Related(ctx, q, r.flags.callOptions()...)
				if err != nil {
					return err
				}
				if r.flags.json {
					return writeJSON(cmd.OutOrStdout(), related)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Related queries for '%s':\n", q.Keyword)
				for i, kw := range related {
					fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, kw)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&q.Limit, "limit", "n", q.Limit, "Number of results")
	cmd.Flags().IntVarP(&q.Days, "days", "d", q.Days, "Time period in days")
	return cmd
}

func newCmpCmd(r *runner) *cobra.Command {
	q := domain.NewCompareQuery()
	var platform string

	cmd := &cobra.Command{
		Use:   "cmp <keyword>...",
		Short: "Compare keywords by average interest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Keywords = args
			q.Geo = r.flags.geo
			q.Platform = domain.Platform(platform)
			return r.run(cmd, func(ctx context.Context, s *session) error {
				cmp, err := s.trends.Compare(ctx, q, r.flags.callOptions()...)
				if err != nil {
					return err
				}
				if r.flags.json {
					return writeJSON(cmd.OutOrStdout(), cmp)
				}
				return printComparison(cmd.OutOrStdout(), q.Days, cmp)
			})
		},
	}
	cmd.Flags().IntVarP(&q.Days, "days", "d", q.Days, "Time period in days")
	cmd.Flags().StringVarP(&platform, "platform", "p", string(q.Platform), "Platform: "+strings.Join(domain.Platforms(), ", "))
	return cmd
}

func newInterestCmd(r *runner) *cobra.Command {
	q := domain.NewInterestQuery()
	var platform string

	cmd := &cobra.Command{
		Use:     "interest <keyword>...",
		Aliases: []string{"hist"},
		Short:   "Get interest over time",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Keywords = args
			q.Geo = r.flags.geo
			q.Platform = domain.Platform(platform)
			return r.run(cmd, func(ctx context.Context, s *session) error {
				in, err := s.trends.Interest(ctx, q, r.flags.callOptions()...)
				if err != nil {
					return err
				}
				if r.flags.json {
					return writeJSON(cmd.OutOrStdout(), in)
				}
				return printInterest(cmd.OutOrStdout(), q.Days, q.Keywords, in)
			})
		},
	}
	cmd.Flags().IntVarP(&q.Days, "days", "d", q.Days, "Time period in days")
	cmd.Flags().StringVarP(&platform, "platform", "p", string(q.Platform), "Platform: "+strings.Join(domain.Platforms(), ", "))
	return cmd
}

func newGeosCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "geos",
		Short: "List supported country codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			geos := domain.SupportedGeos()
			if r.flags.json {
				return writeJSON(cmd.OutOrStdout(), geos)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(geos, " "))
			return nil
		},
	}
}

func newCacheCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result, including the shared tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, func(ctx context.Context, s *session) error {
				remote := 0
				if s.remote != nil {
					n, err := s.remote.Clear(ctx)
					if err != nil {
						return err
					}
					remote = n
				}
				if r.flags.json {
					return writeJSON(cmd.OutOrStdout(), map[string]int{"remote_cleared": remote})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d shared cache entries\n", remote)
				return nil
			})
		},
	})
	return cmd
}

// sortedComparison orders keywords by descending score, then by name.
func sortedComparison(cmp domain.Comparison) []string {
	keys := make([]string, 0, len(cmp))
	for k := range cmp {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if cmp[keys[i]] != cmp[keys[j]] {
			return cmp[keys[i]] > cmp[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
