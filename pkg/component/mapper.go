package component

import (
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/storyswift/pkg/storyboard"
)

// Payload defaults used when a node does not carry the value.
const (
	DefaultLabelText   = "Label"
	DefaultButtonTitle = "Button"
	DefaultImageName   = "photo"
	DefaultSliderValue = 50.0

	// HorizontalAxis is the stackView axis value that selects an HStack.
	// A missing axis attribute also counts as horizontal.
	HorizontalAxis = "horizontal"
)

// DefaultPickerOptions are used for a pickerView without pickerOption children.
var DefaultPickerOptions = []string{"Option 1", "Option 2"}

// Mapper converts descriptor nodes into components.
//
// The zero value is ready to use.
type Mapper struct {
	// Now supplies the date for a datePicker without a timestamp.
	// Defaults to time.Now.
	Now func() time.Time
}

var defaultMapper Mapper

// MapNode maps n with the default [Mapper].
func MapNode(n storyboard.Node) (Component, bool) {
	return defaultMapper.MapNode(n)
}

// MapNode converts a single node into a Component. Dispatch is on the tag
// name; unrecognized tags (connections, metadata, plain views) return false.
// Stack views recurse into their subviews.
func (m Mapper) MapNode(n storyboard.Node) (Component, bool) {
	if n == nil {
		return Component{}, false
	}

	c := Component{
		ID:          storyboard.AttrOr(n, "id", ""),
		Frame:       ExtractFrame(n),
		Constraints: ExtractConstraints(n),
	}

	switch n.Tag {
	case "label":
		c.Kind = KindLabel
		c.Text = storyboard.AttrOr(n, "text", DefaultLabelText)
	case "button":
		c.Kind = KindButton
		c.Text = buttonTitle(n)
	case "textField":
		c.Kind = KindTextField
		c.Text = storyboard.AttrOr(n, "placeholder", "")
	case "imageView":
		c.Kind = KindImageView
		c.Text = storyboard.AttrOr(n, "image", DefaultImageName)
	case "textView":
		c.Kind = KindTextView
		if t := storyboard.First(n, "text"); t != nil {
			c.Text = storyboard.Text(t)
		}
	case "slider":
		c.Kind = KindSlider
		c.Value = parseFloat(storyboard.AttrOr(n, "value", ""), DefaultSliderValue)
	case "switch":
		c.Kind = KindSwitch
		c.On = storyboard.AttrOr(n, "on", "") == "YES"
	case "pickerView":
		c.Kind = KindPickerView
		c.Options = pickerOptions(n)
	case "datePicker":
		c.Kind = KindDatePicker
		c.Date = m.date(n)
	case "tableView":
		c.Kind = KindTableView
	case "scrollView":
		c.Kind = KindScrollView
	case "stackView":
		c.Kind = KindVStack
		if storyboard.AttrOr(n, "axis", HorizontalAxis) == HorizontalAxis {
			c.Kind = KindHStack
		}
		c.Children = m.stackChildren(n)
	default:
		return Component{}, false
	}
	return c, true
}

// NewSpacer returns a Spacer component. Spacers never come out of a
// descriptor; callers insert them to force vertical gaps.
func NewSpacer(id string, height float64) Component {
	return Component{Kind: KindSpacer, ID: id, Height: height}
}

// buttonTitle resolves the title attribute, then the buttonConfiguration
// title, then the normal-state title. Each step is consulted only when the
// previous one is absent.
func buttonTitle(n storyboard.Node) string {
	if v, ok := storyboard.Attr(n, "title"); ok {
		return v
	}
	if v, ok := storyboard.Attr(storyboard.First(n, "buttonConfiguration"), "title"); ok {
		return v
	}
	if v, ok := storyboard.Attr(storyboard.FirstWhere(n, "state", "key", "normal"), "title"); ok {
		return v
	}
	return DefaultButtonTitle
}

func pickerOptions(n storyboard.Node) []string {
	var opts []string
	for _, o := range storyboard.Query(n, "pickerOption") {
		if v, ok := storyboard.Attr(o, "title"); ok {
			opts = append(opts, v)
		}
	}
	if len(opts) == 0 {
		return append([]string(nil), DefaultPickerOptions...)
	}
	return opts
}

// date reads the timestamp attribute as seconds since the Unix epoch.
func (m Mapper) date(n storyboard.Node) time.Time {
	if v, ok := storyboard.Attr(n, "timestamp"); ok {
		if secs, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			whole := int64(secs)
			return time.Unix(whole, int64((secs-float64(whole))*1e9)).UTC()
		}
	}
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// stackChildren maps every element under any subviews descendant of n.
func (m Mapper) stackChildren(n storyboard.Node) []Component {
	var children []Component
	for _, sub := range storyboard.Find(n, ".//subviews/*") {
		if c, ok := m.MapNode(sub); ok {
			children = append(children, c)
		}
	}
	return children
}

// ExtractFrame reads the first rect child keyed "frame". Missing or
// unparsable coordinates fall back to [DefaultRect] field by field.
func ExtractFrame(n storyboard.Node) Rect {
	rect := storyboard.FirstWhere(n, "rect", "key", "frame")
	if rect == nil {
		return DefaultRect
	}
	return Rect{
		X:      parseFloat(storyboard.AttrOr(rect, "x", ""), DefaultRect.X),
		Y:      parseFloat(storyboard.AttrOr(rect, "y", ""), DefaultRect.Y),
		Width:  parseFloat(storyboard.AttrOr(rect, "width", ""), DefaultRect.Width),
		Height: parseFloat(storyboard.AttrOr(rect, "height", ""), DefaultRect.Height),
	}
}

// ExtractConstraints translates the node's constraints > constraint
// children into layout modifiers, one per line. Attributes without a
// modifier are dropped.
func ExtractConstraints(n storyboard.Node) string {
	var mods []string
	for _, c := range storyboard.Query(storyboard.First(n, "constraints"), "constraint") {
		mod := ConstraintModifier(
			storyboard.AttrOr(c, "firstAttribute", ""),
			storyboard.AttrOr(c, "constant", "0"),
		)
		if mod != "" {
			mods = append(mods, mod)
		}
	}
	return strings.Join(mods, "\n")
}

// ConstraintModifier maps one constraint attribute to its modifier text.
// The constant is interpolated verbatim. Unknown attributes map to "".
func ConstraintModifier(attr, constant string) string {
	switch attr {
	case "leading", "top", "bottom", "trailing":
		return ".padding(." + attr + ", " + constant + ")"
	case "centerX":
		return ".frame(maxWidth: .infinity, alignment: .center)"
	case "centerY":
		return ".frame(maxHeight: .infinity, alignment: .center)"
	case "width", "height":
		return ".frame(" + attr + ": " + constant + ")"
	}
	return ""
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}
