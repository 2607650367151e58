package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/storyswift/pkg/api"
	"github.com/matzehuels/storyswift/pkg/buildinfo"
	"github.com/matzehuels/storyswift/pkg/observability"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string        // listen address
	timeout time.Duration // per-request timeout
	noCache bool          // disable the result cache
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter over HTTP",
		Long: `Serve the converter over HTTP. POST storyboard or xib XML to
/v1/convert, /v1/inspect or /v1/graph. Counters are at /v1/stats.

Examples:
  storyswift serve --addr :8080
  curl --data-binary @Main.storyboard 'localhost:8080/v1/convert?mode=flow'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				opts.addr = c.cfg.Server.Addr
			}
			if !cmd.Flags().Changed("timeout") {
				opts.timeout = c.cfg.Server.Timeout.Duration
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	counters := observability.NewCounters()
	observability.SetPipelineHooks(counters)
	observability.SetCacheHooks(counters)
	observability.SetSinkHooks(counters)
	defer observability.Reset()

	srv := api.New(runner, counters, c.Logger, api.Options{
		Timeout:      opts.timeout,
		MaxBodyBytes: c.cfg.Server.MaxBodyBytes,
		Defaults:     c.cfg.PipelineOptions(),
	})
	printInfo("Serving storyswift %s", buildinfo.Version)
	printKeyValue("Address", opts.addr)
	printKeyValue("Cache", c.cfg.Cache.Backend)
	printKeyValue("Timeout", opts.timeout.String())
	printNextStep("Try", "curl --data-binary @Main.storyboard http://"+dialAddr(opts.addr)+"/v1/convert")
	return srv.ListenAndServe(ctx, opts.addr)
}

// dialAddr turns a listen address like ":8080" into one a client can use.
func dialAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
