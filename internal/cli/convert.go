package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/storyswift/pkg/config"
	"github.com/matzehuels/storyswift/pkg/pipeline"
	"github.com/matzehuels/storyswift/pkg/sink"
)

// convertOpts holds the command-line flags for the convert command.
// Flags left unset fall back to the config file.
type convertOpts struct {
	mode         string   // generation mode: auto, tab, flow, flat
	placeholder  string   // placeholder label text
	segueKinds   []string // segue kinds followed in flow mode
	childContent bool     // render child screen components in flow mode
	output       string   // folder the run folder is created in
	inPlace      bool     // write straight into output without a run folder
	copySource   bool     // copy the descriptor into the run folder
	sinkKind     string   // dir, mongo or s3
	concurrency  int      // parallel unit writes
	stdout       bool     // print units instead of writing them
	noCache      bool     // disable the result cache
	refresh      bool     // recompute even when cached
	notify       bool     // desktop notification when done
	open         bool     // open the run folder when done
}

// fromConfig fills opts from cfg for every flag the user did not set.
func (o *convertOpts) fromConfig(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if !changed("mode") {
		o.mode = cfg.Generate.Mode
	}
	if !changed("placeholder") {
		o.placeholder = cfg.Generate.PlaceholderLabel
	}
	if !changed("segue-kinds") {
		o.segueKinds = cfg.Navigation.SegueKinds
	}
	if !changed("child-content") {
		o.childContent = cfg.Generate.ChildContent
	}
	if !changed("output") {
		o.output = cfg.Output.Dir
	}
	if !changed("in-place") {
		o.inPlace = cfg.Output.InPlace
	}
	if !changed("copy-source") {
		o.copySource = cfg.Output.CopySource
	}
	if !changed("sink") {
		o.sinkKind = cfg.Output.Sink
	}
	if !changed("concurrency") {
		o.concurrency = cfg.Output.Concurrency
	}
	if !changed("notify") {
		o.notify = cfg.Output.Notify
	}
}

// pipelineOptions converts the flags into pipeline options for path.
func (o *convertOpts) pipelineOptions(path string) pipeline.Options {
	return pipeline.Options{
		Path:             path,
		Mode:             o.mode,
		PlaceholderLabel: o.placeholder,
		SegueKinds:       o.segueKinds,
		ChildContent:     o.childContent,
		Refresh:          o.refresh,
	}
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Generate SwiftUI views from a storyboard or xib",
		Long: `Generate SwiftUI views from a storyboard or xib file.

Storyboards with a tab bar controller produce one view per tab and a
TabContentView. Storyboards with a navigation controller produce a
NavigationStack root view and one view per reachable screen. Everything
else produces one GeneratedView<N> per screen.

Without a file argument an interactive picker lists the storyboards and
xibs below the current directory.

Examples:
  storyswift convert Main.storyboard
  storyswift convert Main.storyboard --mode flat -o ./out
  storyswift convert LoginCell.xib --stdout
  storyswift convert Main.storyboard --sink s3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.fromConfig(cmd, c.cfg)
			if err := pipeline.ValidateMode(opts.mode); err != nil {
				return err
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				picked, err := pickDescriptor(".")
				if err != nil {
					return err
				}
				if picked == "" {
					printInfo("No file selected")
					return nil
				}
				path = picked
			}
			return c.runConvert(cmd.Context(), path, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", pipeline.ModeAuto, "generation mode: auto, tab, flow, flat")
	cmd.Flags().StringVar(&opts.placeholder, "placeholder", "", "text for labels without text")
	cmd.Flags().StringSliceVar(&opts.segueKinds, "segue-kinds", nil, "segue kinds that add a screen to a flow (comma-separated)")
	cmd.Flags().BoolVar(&opts.childContent, "child-content", false, "render the components of child screens in flow mode")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "folder for the run folder (default: Downloads)")
	cmd.Flags().BoolVar(&opts.inPlace, "in-place", false, "write into the output folder without a timestamped run folder")
	cmd.Flags().BoolVar(&opts.copySource, "copy-source", true, "copy the descriptor into the run folder")
	cmd.Flags().StringVar(&opts.sinkKind, "sink", config.SinkDir, "output sink: dir, mongo, s3")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", sink.DefaultConcurrency, "parallel unit writes")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the generated units instead of writing them")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().BoolVar(&opts.notify, "notify", false, "show a desktop notification when done")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the run folder when done (dir sink)")

	return cmd
}

// runConvert converts path and writes the units to the configured sink.
func (c *CLI) runConvert(ctx context.Context, path string, opts *convertOpts) error {
	logger := loggerFromContext(ctx)
	name := filepath.Base(path)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Converting "+name)
	spinner.Start()
	result, err := runner.Convert(ctx, opts.pipelineOptions(path))
	if err != nil {
		spinner.Stop()
		c.notifyDone(ctx, opts, "Conversion failed", fmt.Sprintf("%s: %v", name, err))
		return err
	}

	if opts.stdout {
		spinner.Stop()
		printWarnings(result.Warnings)
		writeUnits(os.Stdout, result.Units)
		return nil
	}

	out, err := c.openSink(ctx, path, opts)
	if err != nil {
		spinner.Stop()
		return err
	}
	defer out.Close()

	prog := newProgress(logger)
	spinner.SetMessage(fmt.Sprintf("Writing %d units to %s", len(result.Units), out.Kind()))
	outcomes := sink.WriteAll(ctx, out, result.Units, opts.concurrency)
	spinner.Stop()

	printWarnings(result.Warnings)
	printOutcomes(outcomes)
	failed := sink.Failed(outcomes)
	prog.done(fmt.Sprintf("Wrote %d units to %s", len(outcomes)-len(failed), out.Kind()))
	printStats(result.Mode, len(result.Units), len(result.Warnings), result.CacheInfo.ResultHit)

	if len(failed) > 0 {
		c.notifyDone(ctx, opts, "Conversion incomplete", fmt.Sprintf("%d of %d units failed", len(failed), len(outcomes)))
		return fmt.Errorf("%d of %d units failed to write", len(failed), len(outcomes))
	}

	printSuccess("Converted %s", name)
	c.notifyDone(ctx, opts, "Conversion complete", fmt.Sprintf("%s: %d SwiftUI files", name, len(outcomes)))

	if ds, ok := out.(*sink.DirSink); ok {
		printDetail("Run folder: %s", ds.RunDir())
		if opts.open {
			if err := openFolder(ctx, ds.RunDir()); err != nil {
				logger.Warn("could not open run folder", "error", err)
			}
		}
	}
	return nil
}

// openSink creates the sink selected by opts.sinkKind.
func (c *CLI) openSink(ctx context.Context, path string, opts *convertOpts) (sink.Sink, error) {
	var (
		out sink.Sink
		err error
	)
	switch opts.sinkKind {
	case config.SinkMongo:
		m := c.cfg.Mongo
		out, err = sink.NewMongoSink(ctx, sink.MongoConfig{URI: m.URI, Database: m.Database, Collection: m.Collection})
	case config.SinkS3:
		s := c.cfg.S3
		out, err = sink.NewS3Sink(sink.S3Config{
			Endpoint:  s.Endpoint,
			Region:    s.Region,
			AccessKey: s.AccessKey,
			SecretKey: s.SecretKey,
			Bucket:    s.Bucket,
			Prefix:    s.Prefix,
			UseSSL:    s.UseSSL,
		})
	case config.SinkDir, "":
		source := ""
		if opts.copySource && !opts.inPlace {
			source = path
		}
		out, err = sink.NewDirSink(sink.DirOptions{Root: opts.output, Source: source, InPlace: opts.inPlace})
	default:
		return nil, fmt.Errorf("invalid sink %q (must be one of: dir, mongo, s3)", opts.sinkKind)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// notifyDone sends a desktop notification when --notify is set.
func (c *CLI) notifyDone(ctx context.Context, opts *convertOpts, title, body string) {
	if !opts.notify {
		return
	}
	if err := notify(ctx, title, body); err != nil {
		c.Logger.Warn("desktop notification failed", "error", err)
	}
}
