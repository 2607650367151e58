package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/storyswift/pkg/component"
	"github.com/matzehuels/storyswift/pkg/errors"
	"github.com/matzehuels/storyswift/pkg/storyboard"
)

// Inspection lists the components extracted from every screen of a
// descriptor. It is the data behind `storyswift inspect`.
type Inspection struct {
	Mode    string         `json:"mode" yaml:"mode"`
	Screens []ScreenReport `json:"screens" yaml:"screens"`
}

// ScreenReport is one screen of an Inspection.
type ScreenReport struct {
	ID         string                `json:"id" yaml:"id"`
	Tag        string                `json:"tag" yaml:"tag"`
	Name       string                `json:"name,omitempty" yaml:"name,omitempty"`
	Components []component.Component `json:"components" yaml:"components"`
	// XML is the indented source of the screen, when requested.
	XML string `json:"xml,omitempty" yaml:"xml,omitempty"`
}

// Inspect loads the descriptor and reports the mapped components of each
// screen without generating code. Screens are view controllers, then
// standalone xib views, then the first table cell content view.
func (r *Runner) Inspect(ctx context.Context, opts Options, withXML bool) (*Inspection, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	data, err := r.read(ctx, opts)
	if err != nil {
		return nil, err
	}
	doc, err := storyboard.Parse(data)
	if err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, errors.New(errors.ErrCodeNothingToDo, "descriptor is empty")
	}

	report := &Inspection{Mode: DetectMode(doc)}
	for _, n := range inspectedScreens(doc) {
		s := ScreenReport{
			ID:         storyboard.AttrOr(n, "id", ""),
			Tag:        storyboard.Tag(n),
			Name:       storyboard.AttrOr(n, "storyboardIdentifier", storyboard.AttrOr(n, "customClass", "")),
			Components: component.ScreenComponents(n, opts.ScreenOptions()),
		}
		if withXML {
			s.XML = storyboard.Pretty(n)
		}
		report.Screens = append(report.Screens, s)
	}
	opts.Logger.Debug("inspected descriptor", "screens", len(report.Screens))
	return report, nil
}

func inspectedScreens(doc *storyboard.Document) []storyboard.Node {
	screens := append(doc.ViewControllers(), doc.StandaloneViews()...)
	if cell := doc.TableCellContentView(); cell != nil {
		screens = append(screens, cell)
	}
	return screens
}
