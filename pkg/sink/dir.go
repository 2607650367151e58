package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Run folder layout.
const (
	// RunPrefix starts the name of every run folder.
	RunPrefix = "StoryboardConverter_"
	// UnitsDir is the folder inside a run that holds the .swift files.
	UnitsDir = "GeneratedSwiftUIFiles"
	// RunTimeLayout formats the run folder timestamp.
	RunTimeLayout = "2006-01-02_15-04-05"
)

// DirOptions configures a DirSink.
type DirOptions struct {
	// Root is the folder the run folder is created in.
	// Empty means DefaultRoot.
	Root string
	// Source is copied into the run folder when set.
	Source string
	// InPlace writes units straight into Root/GeneratedSwiftUIFiles
	// without a timestamped run folder.
	InPlace bool
	// Now stamps the run folder. Nil means time.Now.
	Now func() time.Time
}

// DirSink writes units as files below a run folder.
type DirSink struct {
	runID    string
	runDir   string
	unitsDir string
}

// DefaultRoot returns the user's Downloads folder when it exists,
// otherwise the current directory.
func DefaultRoot() string {
	if home, err := os.UserHomeDir(); err == nil {
		downloads := filepath.Join(home, "Downloads")
		if info, err := os.Stat(downloads); err == nil && info.IsDir() {
			return downloads
		}
	}
	return "."
}

// NewDirSink creates the run folder and copies the source descriptor
// into it.
func NewDirSink(opts DirOptions) (*DirSink, error) {
	root := opts.Root
	if root == "" {
		root = DefaultRoot()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	runDir := root
	if !opts.InPlace {
		runDir = filepath.Join(root, RunPrefix+now().Format(RunTimeLayout))
	}
	s := &DirSink{
		runID:    uuid.NewString(),
		runDir:   runDir,
		unitsDir: filepath.Join(runDir, UnitsDir),
	}
	if err := os.MkdirAll(s.unitsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if opts.Source != "" {
		if err := copyFile(opts.Source, filepath.Join(runDir, filepath.Base(opts.Source))); err != nil {
			return nil, fmt.Errorf("copy descriptor: %w", err)
		}
	}
	return s, nil
}

// Kind returns "dir".
func (s *DirSink) Kind() string { return "dir" }

// RunID identifies this run.
func (s *DirSink) RunID() string { return s.runID }

// RunDir is the run folder.
func (s *DirSink) RunDir() string { return s.runDir }

// UnitsDir is the folder holding the generated files.
func (s *DirSink) UnitsDir() string { return s.unitsDir }

// Location returns the file path of the unit called name.
func (s *DirSink) Location(name string) string {
	return filepath.Join(s.unitsDir, name+".swift")
}

// WriteUnit writes name.swift, replacing any previous file.
func (s *DirSink) WriteUnit(_ context.Context, name, text string) error {
	return os.WriteFile(s.Location(name), []byte(text), 0o644)
}

// Close is a no-op.
func (s *DirSink) Close() error { return nil }

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
