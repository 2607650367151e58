// Package pipeline provides the conversion pipeline for storyswift.
//
// This package implements the complete load → detect mode → generate
// pipeline used by the CLI and the HTTP API. Both entry points go through
// a [Runner], so caching, logging and mode dispatch behave the same
// everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and parse the descriptor (fatal on failure)
//  2. Detect: Pick tab, flow or flat mode from the descriptor's controllers
//  3. Generate: Map screens to components and render SwiftUI units
//
// A forced mode skips detection. Flow mode falls back to flat mode when no
// navigation flow can be reconstructed.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Convert(ctx, pipeline.Options{Path: "Main.storyboard"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, u := range result.Units {
//	    fmt.Println(u.FileName())
//	}
package pipeline

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/storyswift/pkg/buildinfo"
	"github.com/matzehuels/storyswift/pkg/cache"
	"github.com/matzehuels/storyswift/pkg/component"
	"github.com/matzehuels/storyswift/pkg/errors"
	"github.com/matzehuels/storyswift/pkg/navigation"
	"github.com/matzehuels/storyswift/pkg/swiftui"
)

// Generation modes.
const (
	ModeAuto = "auto"
	ModeTab  = "tab"
	ModeFlow = "flow"
	ModeFlat = "flat"
)

// ValidModes is the set of accepted Options.Mode values.
var ValidModes = map[string]bool{
	ModeAuto: true,
	ModeTab:  true,
	ModeFlow: true,
	ModeFlat: true,
}

// DefaultSegueKinds are the segue kinds that add a child screen to a flow.
var DefaultSegueKinds = []string{"push", "show", "presentation", "model"}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one conversion.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input: Data takes precedence over Path.
	Path string `json:"path,omitempty"`
	Data []byte `json:"-"`

	// Generation options
	Mode             string   `json:"mode,omitempty"`
	PlaceholderLabel string   `json:"placeholder_label,omitempty"`
	SegueKinds       []string `json:"segue_kinds,omitempty"`
	ChildContent     bool     `json:"child_content,omitempty"`
	Refresh          bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger      `json:"-"`
	Now    func() time.Time `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of one conversion.
type Result struct {
	// Units are the generated files in generation order.
	Units []swiftui.Unit `json:"units"`

	// Mode is the mode that produced Units (never "auto").
	Mode string `json:"mode"`

	// Warnings lists skipped screens and ignored segue kinds.
	Warnings []string `json:"warnings,omitempty"`

	// DescriptorHash is the content hash of the input.
	DescriptorHash string `json:"descriptor_hash"`

	// Stats contains timing information.
	Stats Stats `json:"-"`

	// CacheInfo tracks whether the result came from the cache.
	CacheInfo CacheInfo `json:"-"`

	// UsesClock is set when a datePicker without a timestamp took the
	// current time. Such results are never cached.
	UsesClock bool `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Screens      int
	LoadTime     time.Duration
	GenerateTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ResultHit bool // Whether the units came from cache
	GraphHit  bool // Whether the navigation graph came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateMode checks that a mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be one of: auto, tab, flow, flat)", mode)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Data) == 0 {
		if o.Path == "" {
			return errors.New(errors.ErrCodeInvalidInput, "descriptor path or data is required")
		}
		if err := errors.ValidateDescriptorPath(o.Path); err != nil {
			return err
		}
	}
	o.SetDefaults()
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills empty fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Mode == "" {
		o.Mode = ModeAuto
	}
	if o.PlaceholderLabel == "" {
		o.PlaceholderLabel = component.DefaultPlaceholderLabel
	}
	if len(o.SegueKinds) == 0 {
		o.SegueKinds = slices.Clone(DefaultSegueKinds)
	}
}

// Kinds returns the accepted segue kinds as a set.
func (o *Options) Kinds() navigation.KindSet {
	return navigation.NewKindSet(o.SegueKinds...)
}

// ScreenOptions returns the component collection options.
func (o *Options) ScreenOptions() component.ScreenOptions {
	return component.ScreenOptions{
		PlaceholderLabel: o.PlaceholderLabel,
		Mapper:           component.Mapper{Now: o.Now},
	}
}

// ResultKeyOpts returns cache key options for generated units.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Mode:             o.Mode,
		PlaceholderLabel: o.PlaceholderLabel,
		SegueKinds:       o.SegueKinds,
		ChildContent:     o.ChildContent,
		Version:          buildinfo.Version,
	}
}

// GraphKeyOpts returns cache key options for navigation graphs.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		SegueKinds: o.SegueKinds,
		Version:    buildinfo.Version,
	}
}
