package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/storyswift/pkg/component"
	"github.com/matzehuels/storyswift/pkg/pipeline"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	format string // text, json or yaml
	xml    bool   // include each screen's XML
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{format: "text"}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "List the components mapped from every screen",
		Long: `List the screens of a storyboard or xib and the components mapped from each,
in the order they are generated. Nothing is written.

Examples:
  storyswift inspect Main.storyboard
  storyswift inspect Main.storyboard --format yaml --xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "text" && opts.format != "json" && opts.format != "yaml" {
				return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", opts.format)
			}
			return c.runInspect(cmd.Context(), args[0], opts, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json, yaml")
	cmd.Flags().BoolVar(&opts.xml, "xml", false, "include the XML of each screen")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, path string, opts inspectOpts, w io.Writer) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.cfg.PipelineOptions()
	popts.Path = path
	report, err := runner.Inspect(ctx, popts, opts.xml)
	if err != nil {
		return err
	}
	return writeInspection(w, report, opts.format)
}

// writeInspection encodes report in format.
func writeInspection(w io.Writer, report *pipeline.Inspection, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "%s %s\n", StyleTitle.Render("Detected mode:"), report.Mode)
	for _, s := range report.Screens {
		title := s.Tag + " " + s.ID
		if s.Name != "" {
			title += " (" + s.Name + ")"
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleHighlight.Render(title))
		if len(s.Components) == 0 {
			fmt.Fprintln(w, "  "+StyleDim.Render("no components"))
		}
		writeComponents(w, s.Components, 1)
		if s.XML != "" {
			for _, line := range strings.Split(strings.TrimRight(s.XML, "\n"), "\n") {
				fmt.Fprintln(w, "  "+StyleDim.Render(line))
			}
		}
	}
	return nil
}

func writeComponents(w io.Writer, list []component.Component, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, comp := range list {
		line := comp.String()
		if comp.Constraints != "" {
			line += " " + StyleDim.Render(comp.Constraints)
		}
		fmt.Fprintf(w, "%s%s %s\n", pad, StyleDim.Render(fmt.Sprintf("y=%g", comp.YPosition())), line)
		writeComponents(w, comp.Children, depth+1)
	}
}
