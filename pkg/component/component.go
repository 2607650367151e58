package component

import (
	"fmt"
	"time"
)

// Kind identifies the control variant of a [Component].
type Kind int

const (
	KindLabel Kind = iota
	KindButton
	KindTextField
	KindImageView
	KindTextView
	KindSlider
	KindSwitch
	KindPickerView
	KindDatePicker
	KindTableView
	KindScrollView
	KindSpacer
	KindHStack
	KindVStack
)

var kindNames = [...]string{
	KindLabel:      "Label",
	KindButton:     "Button",
	KindTextField:  "TextField",
	KindImageView:  "ImageView",
	KindTextView:   "TextView",
	KindSlider:     "Slider",
	KindSwitch:     "Switch",
	KindPickerView: "PickerView",
	KindDatePicker: "DatePicker",
	KindTableView:  "TableView",
	KindScrollView: "ScrollView",
	KindSpacer:     "Spacer",
	KindHStack:     "HStack",
	KindVStack:     "VStack",
}

// String returns the variant name, e.g. "Label".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText lets Kind appear by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsStack reports whether the kind holds child components.
func (k Kind) IsStack() bool { return k == KindHStack || k == KindVStack }

// Rect is a frame in layout units.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// DefaultRect is the frame used when a node has none.
var DefaultRect = Rect{X: 0, Y: 0, Width: 100, Height: 50}

// Component is one mapped control or container.
//
// Which payload fields are meaningful depends on Kind:
//
//	Label, TextField, ImageView, TextView, Button: Text
//	Slider: Value
//	Switch: On
//	PickerView: Options
//	DatePicker: Date
//	Spacer: Height (Frame and Constraints are unused)
//	HStack, VStack: Children
//
// TableView and ScrollView carry no payload.
type Component struct {
	Kind        Kind        `json:"kind" yaml:"kind"`
	ID          string      `json:"id" yaml:"id"`
	Frame       Rect        `json:"frame" yaml:"frame"`
	Constraints string      `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Text        string      `json:"text,omitempty" yaml:"text,omitempty"`
	Value       float64     `json:"value,omitempty" yaml:"value,omitempty"`
	On          bool        `json:"on,omitempty" yaml:"on,omitempty"`
	Options     []string    `json:"options,omitempty" yaml:"options,omitempty"`
	Date        time.Time   `json:"date,omitzero" yaml:"date,omitempty"`
	Height      float64     `json:"height,omitempty" yaml:"height,omitempty"`
	Children    []Component `json:"children,omitempty" yaml:"children,omitempty"`
}

// YPosition is the sort key for screen ordering: the frame origin for
// every kind except Spacer, which uses its height.
func (c Component) YPosition() float64 {
	if c.Kind == KindSpacer {
		return c.Height
	}
	return c.Frame.Y
}

// String returns a short description such as `Label#l1("Hello")`.
func (c Component) String() string {
	switch c.Kind {
	case KindLabel, KindButton, KindTextField, KindImageView, KindTextView:
		return fmt.Sprintf("%s#%s(%q)", c.Kind, c.ID, c.Text)
	case KindHStack, KindVStack:
		return fmt.Sprintf("%s#%s[%d]", c.Kind, c.ID, len(c.Children))
	default:
		return fmt.Sprintf("%s#%s", c.Kind, c.ID)
	}
}
