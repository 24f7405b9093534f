package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"trendkit/internal/app"
	"trendkit/internal/core/cache"
	"trendkit/internal/core/config"
	"trendkit/internal/core/logger"
	"trendkit/internal/features/trends/domain"
	"trendkit/internal/features/trends/ports"

	"github.com/spf13/cobra"
)

// session is what one command invocation works with.
type session struct {
	trends ports.TrendService
	// remote is the shared cache tier, nil when not configured.
	remote cache.Remote
	close  func()
}

// env is what the commands need from the outside world.
type env struct {
	out  io.Writer
	open func(ctx context.Context, verbose bool) (*session, error)
}

func defaultEnv() *env {
	return &env{
		out: os.Stdout,
		open: func(ctx context.Context, verbose bool) (*session, error) {
			cfg, err := config.Load(".")
			if err != nil {
				return nil, err
			}

			level := "warn"
			if verbose {
				level = "debug"
			}
			if err := logger.Init(cfg.Environment, level); err != nil {
				return nil, err
			}

			a, err := app.New(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return &session{
				trends: a.Trends,
				remote: a.Remote,
				close: func() {
					a.Close()
					logger.Sync()
				},
			}, nil
		},
	}
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	geo     string
	json    bool
	noCache bool
	ttl     time.Duration
	verbose bool
}

func (g *globalFlags) callOptions() []cache.CallOption {
	var opts []cache.CallOption
	if g.noCache {
		opts = append(opts, cache.NoCache())
	}
	if g.ttl > 0 {
		opts = append(opts, cache.TTL(g.ttl))
	}
	return opts
}

func newRootCmd(e *env) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "trendkit",
		Short:         "Google Trends CLI - fast trend data access",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(e.out)

	pf := root.PersistentFlags()
	pf.StringVarP(&g.geo, "geo", "g", domain.DefaultGeo, "Country code")
	pf.BoolVarP(&g.json, "json", "j", false, "Output as JSON")
	pf.BoolVar(&g.noCache, "no-cache", false, "Bypass the cache")
	pf.DurationVar(&g.ttl, "ttl", 0, "Cache TTL override (e.g. 10m)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Log upstream activity to stderr")

	r := &runner{env: e, flags: g}
	root.AddCommand(
		newTrendCmd(r),
		newBulkCmd(r),
		newRelCmd(r),
		newCmpCmd(r),
		newInterestCmd(r),
		newGeosCmd(r),
		newCacheCmd(r),
	)
	return root
}

// runner opens a session for a single command invocation.
type runner struct {
	env   *env
	flags *globalFlags
}

func (r *runner) run(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := r.env.open(ctx, r.flags.verbose)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return err
	}
	if s.close != nil {
		defer s.close()
	}

	if err := fn(ctx, s); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}
