package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/storyswift/pkg/navigation"
	"github.com/matzehuels/storyswift/pkg/render"
	"github.com/matzehuels/storyswift/pkg/render/nodelink"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string  // output file (stdout for dot/json when empty)
	format   string  // json, dot, svg, pdf, png
	detailed bool    // show IDs and icons in node labels
	scale    float64 // PNG scale factor
	noCache  bool    // disable the result cache
}

// validGraphFormats is the set of supported graph output formats.
var validGraphFormats = map[string]bool{"json": true, "dot": true, "svg": true, "pdf": true, "png": true}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: "svg", scale: 2}

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Draw the navigation flow and tabs of a storyboard",
		Long: `Draw the navigation flow and tab bar of a storyboard as a node-link diagram.

Examples:
  storyswift graph Main.storyboard                  # Main.svg
  storyswift graph Main.storyboard -f png -o nav.png
  storyswift graph Main.storyboard -f dot | dot -Tpdf > nav.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validGraphFormats[opts.format] {
				return fmt.Errorf("invalid format: %s (must be 'json', 'dot', 'svg', 'pdf' or 'png')", opts.format)
			}
			return c.runGraph(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, pdf, dot, json")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show element IDs and tab icons")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, input string, opts *graphOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.cfg.PipelineOptions()
	popts.Path = input
	g, hit, err := runner.GraphWithCacheInfo(ctx, popts)
	if err != nil {
		return err
	}
	if g.Empty() {
		printWarning("No navigation controller or tab bar controller found")
	}
	logger.Debug("navigation graph", "flow", g.Flow != nil, "tabs", len(g.Tabs), "cached", hit)

	data, err := graphBytes(ctx, g, opts)
	if err != nil {
		return err
	}

	if opts.output == "" && (opts.format == "dot" || opts.format == "json") {
		_, err := os.Stdout.Write(data)
		return err
	}
	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	printSuccess("Rendered navigation graph")
	printFile(out, len(data))
	return nil
}

func graphBytes(ctx context.Context, g navigation.Graph, opts *graphOpts) ([]byte, error) {
	if opts.format == "json" {
		data, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	dot := nodelink.FlowDOT(g, nodelink.Options{Detailed: opts.detailed})
	if opts.format == "dot" {
		return []byte(dot), nil
	}
	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(ctx, svg, opts.format, opts.scale)
}
