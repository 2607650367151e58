package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/storyswift/pkg/component"
	"github.com/matzehuels/storyswift/pkg/errors"
	"github.com/matzehuels/storyswift/pkg/navigation"
	"github.com/matzehuels/storyswift/pkg/storyboard"
	"github.com/matzehuels/storyswift/pkg/swiftui"
)

// DetectMode picks the mode for doc: tab when it has a tab bar controller,
// flow when it has a navigation controller, flat otherwise.
func DetectMode(doc *storyboard.Document) string {
	switch {
	case len(doc.TabBarControllers()) > 0:
		return ModeTab
	case len(doc.NavigationControllers()) > 0:
		return ModeFlow
	default:
		return ModeFlat
	}
}

// Generate converts a loaded descriptor into units. It fills Units, Mode,
// Warnings and Stats.Screens of the returned Result.
//
// A document without a root or without any convertible screen yields a
// NOTHING_TO_CONVERT error.
func Generate(doc *storyboard.Document, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := ValidateMode(opts.Mode); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, errors.New(errors.ErrCodeNothingToDo, "descriptor is empty")
	}

	g := &generator{doc: doc, opts: opts}
	mode := opts.Mode
	if mode == ModeAuto {
		mode = DetectMode(doc)
	}

	switch mode {
	case ModeTab:
		if !g.tabs() {
			g.warn("no tab bar entries found; using flat mode")
			mode = ModeFlat
			g.flat()
		}
	case ModeFlow:
		if !g.flow() {
			g.warn("no navigation flow could be reconstructed; using flat mode")
			mode = ModeFlat
			g.flat()
		}
	default:
		g.flat()
	}

	if len(g.units) == 0 {
		return nil, errors.New(errors.ErrCodeNothingToDo, "descriptor has no screens with convertible components")
	}
	return &Result{
		Units:     g.units,
		Mode:      mode,
		Warnings:  g.warnings,
		Stats:     Stats{Screens: g.screens},
		UsesClock: g.usedClock,
	}, nil
}

type generator struct {
	doc       *storyboard.Document
	opts      Options
	units     []swiftui.Unit
	warnings  []string
	screens   int
	usedClock bool
}

func (g *generator) warn(format string, args ...any) {
	g.warnings = append(g.warnings, fmt.Sprintf(format, args...))
}

// components maps one screen. A nil node (unresolved destination) has no
// components.
func (g *generator) components(n storyboard.Node) []component.Component {
	if n == nil {
		return nil
	}
	g.screens++
	so := g.opts.ScreenOptions()
	now := so.Mapper.Now
	if now == nil {
		now = time.Now
	}
	so.Mapper.Now = func() time.Time {
		g.usedClock = true
		return now()
	}
	return component.ScreenComponents(n, so)
}

func (g *generator) tabs() bool {
	entries := navigation.TabEntries(g.doc)
	if len(entries) == 0 {
		return false
	}
	for i, e := range entries {
		if !e.Resolved() {
			g.warn("tab %d: destination %q not found; generating an empty view", i+1, e.NavigationID)
		}
	}
	g.units = append(g.units, swiftui.Tabs(entries, g.components)...)
	return true
}

func (g *generator) flow() bool {
	edges := navigation.CollectEdges(g.doc)
	kinds := g.opts.Kinds()
	if ignored := navigation.UnacceptedKinds(edges, kinds); len(ignored) > 0 {
		g.warn("segue kinds not followed: %s (accepted: %s)",
			strings.Join(ignored, ", "), strings.Join(g.opts.SegueKinds, ", "))
	}
	flow, ok := navigation.BuildFlow(edges, kinds)
	if !ok {
		return false
	}
	g.units = append(g.units, swiftui.Flow(flow, g.components, swiftui.FlowOptions{
		ChildContent: g.opts.ChildContent,
	})...)
	return true
}

// flat emits one GeneratedView<N> per view controller. Xib files without
// controllers use their top-level views, then the first table cell.
func (g *generator) flat() {
	screens := g.doc.ViewControllers()
	if len(screens) == 0 {
		screens = g.doc.StandaloneViews()
	}
	if len(screens) == 0 {
		cell := g.doc.TableCellContentView()
		if cell == nil {
			return
		}
		comps := g.components(cell)
		if len(comps) == 0 {
			g.warn("table cell content view has no components; skipped")
			return
		}
		g.units = append(g.units, swiftui.Flat(swiftui.TableCellName, comps))
		return
	}

	n := 0
	for _, s := range screens {
		comps := g.components(s)
		if len(comps) == 0 {
			g.warn("screen %q has no components; skipped", storyboard.AttrOr(s, "id", "?"))
			continue
		}
		n++
		g.units = append(g.units, swiftui.Flat(swiftui.FlatName(n), comps))
	}
}
