package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/storyswift/pkg/config"
	"github.com/matzehuels/storyswift/pkg/errors"
	"github.com/matzehuels/storyswift/pkg/pipeline"
	"github.com/matzehuels/storyswift/pkg/sink"
)

func testConvertOpts(output string) *convertOpts {
	return &convertOpts{
		mode:        pipeline.ModeAuto,
		segueKinds:  pipeline.DefaultSegueKinds,
		output:      output,
		copySource:  true,
		sinkKind:    config.SinkDir,
		concurrency: 2,
		noCache:     true,
	}
}

func TestRunConvertWritesRunFolder(t *testing.T) {
	c, ctx := newTestCLI(t)
	src := writeDescriptor(t, t.TempDir(), "Main.storyboard", loginStoryboard)
	out := t.TempDir()

	if err := c.runConvert(ctx, src, testConvertOpts(out)); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}

	runs, _ := filepath.Glob(filepath.Join(out, sink.RunPrefix+"*"))
	if len(runs) != 1 {
		t.Fatalf("run folders = %v, want one", runs)
	}
	files, _ := filepath.Glob(filepath.Join(runs[0], sink.UnitsDir, "*.swift"))
	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	slices.Sort(names)
	if !slices.Equal(names, []string{"HomeView.swift", "LoginView.swift"}) {
		t.Errorf("generated files = %v", names)
	}
	if _, err := os.Stat(filepath.Join(runs[0], "Main.storyboard")); err != nil {
		t.Errorf("descriptor not copied: %v", err)
	}

	root, _ := os.ReadFile(filepath.Join(runs[0], sink.UnitsDir, "LoginView.swift"))
	if !strings.Contains(string(root), "NavigationStack") || !strings.Contains(string(root), `Text("Welcome")`) {
		t.Errorf("LoginView.swift = %s", root)
	}
}

func TestRunConvertInPlace(t *testing.T) {
	c, ctx := newTestCLI(t)
	src := writeDescriptor(t, t.TempDir(), "Main.storyboard", loginStoryboard)
	out := t.TempDir()
	opts := testConvertOpts(out)
	opts.inPlace = true
	opts.mode = pipeline.ModeFlat

	if err := c.runConvert(ctx, src, opts); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, sink.UnitsDir, "GeneratedView1.swift")); err != nil {
		t.Errorf("flat unit missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "Main.storyboard")); !os.IsNotExist(err) {
		t.Error("in-place runs should not copy the descriptor")
	}
}

func TestRunConvertStdoutWritesNothing(t *testing.T) {
	c, ctx := newTestCLI(t)
	src := writeDescriptor(t, t.TempDir(), "Main.storyboard", loginStoryboard)
	out := t.TempDir()
	opts := testConvertOpts(out)
	opts.stdout = true

	if err := c.runConvert(ctx, src, opts); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}
	if entries, _ := os.ReadDir(out); len(entries) != 0 {
		t.Errorf("--stdout wrote %d entries", len(entries))
	}
}

func TestRunConvertErrors(t *testing.T) {
	c, ctx := newTestCLI(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"malformed", writeDescriptor(t, dir, "Broken.storyboard", "<document><scenes>"), errors.ErrCodeParse},
		{"missing", filepath.Join(dir, "Gone.xib"), errors.ErrCodeFileNotFound},
		{"wrong extension", writeDescriptor(t, dir, "notes.txt", loginStoryboard), errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.runConvert(ctx, tt.path, testConvertOpts(t.TempDir()))
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOpenSinkInvalid(t *testing.T) {
	c, ctx := newTestCLI(t)
	opts := testConvertOpts(t.TempDir())
	opts.sinkKind = "ftp"
	if _, err := c.openSink(ctx, "Main.storyboard", opts); err == nil {
		t.Error("openSink() should reject an unknown sink")
	}

	opts.sinkKind = config.SinkS3
	if _, err := c.openSink(ctx, "Main.storyboard", opts); err == nil {
		t.Error("openSink() should fail without S3 settings")
	}
}

func TestConvertOptsFromConfig(t *testing.T) {
	var opts convertOpts
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&opts.mode, "mode", "", "")
	if err := cmd.Flags().Set("mode", pipeline.ModeFlat); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Generate.Mode = pipeline.ModeFlow
	cfg.Output.Dir = "/exports"
	cfg.Output.Concurrency = 9
	opts.fromConfig(cmd, cfg)

	if opts.mode != pipeline.ModeFlat {
		t.Errorf("mode = %s, flag should win", opts.mode)
	}
	if opts.output != "/exports" || opts.concurrency != 9 || !opts.copySource {
		t.Errorf("opts = %+v, unset flags should come from config", opts)
	}

	p := opts.pipelineOptions("Main.storyboard")
	if p.Path != "Main.storyboard" || p.Mode != pipeline.ModeFlat || !slices.Equal(p.SegueKinds, pipeline.DefaultSegueKinds) {
		t.Errorf("pipelineOptions() = %+v", p)
	}
}
