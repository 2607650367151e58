package swiftui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/storyswift/pkg/component"
)

// Spacing bounds for the top padding inserted between sibling components.
const (
	MinSpacing = 4
	MaxSpacing = 32
)

// indentUnit is one level of Swift indentation.
const indentUnit = "    "

// renderFunc renders the view expression of one component, without
// padding or constraint modifiers.
type renderFunc func(c component.Component) string

var renderers map[component.Kind]renderFunc

func init() {
	renderers = map[component.Kind]renderFunc{
		component.KindLabel:      renderLabel,
		component.KindButton:     renderButton,
		component.KindTextField:  renderTextField,
		component.KindImageView:  renderImage,
		component.KindTextView:   renderTextView,
		component.KindSlider:     renderSlider,
		component.KindSwitch:     renderToggle,
		component.KindPickerView: renderPicker,
		component.KindDatePicker: renderDatePicker,
		component.KindTableView:  renderList,
		component.KindScrollView: renderScrollView,
		component.KindSpacer:     renderSpacer,
		component.KindHStack:     renderStack("HStack"),
		component.KindVStack:     renderStack("VStack"),
	}
}

// Render returns the SwiftUI text for c. A positive topPadding adds a
// .padding(.top, n) modifier; Spacers never get one. Constraint modifiers
// follow on their own lines.
func Render(c component.Component, topPadding int) string {
	render, ok := renderers[c.Kind]
	if !ok {
		return ""
	}
	lines := []string{render(c)}
	if c.Kind == component.KindSpacer {
		return lines[0]
	}
	if topPadding > 0 {
		lines = append(lines, fmt.Sprintf(".padding(.top, %d)", topPadding))
	}
	if c.Constraints != "" {
		lines = append(lines, c.Constraints)
	}
	return strings.Join(lines, "\n")
}

// Spacing returns the top padding for a component at y following a
// sibling at prevY, clamped to [MinSpacing, MaxSpacing].
func Spacing(prevY, y float64) int {
	delta := y - prevY
	switch {
	case delta < MinSpacing:
		return MinSpacing
	case delta > MaxSpacing:
		return MaxSpacing
	}
	return int(delta)
}

// Body renders a screen's ordered components. HStack children are removed
// from the top level, then each component is rendered with the spacing
// computed from the previous non-Spacer sibling. Fragments are separated
// by a blank line.
func Body(components []component.Component) string {
	var (
		fragments []string
		prevY     float64
		havePrev  bool
	)
	for _, c := range component.WithoutStackChildren(components) {
		pad := 0
		if c.Kind != component.KindSpacer {
			if havePrev {
				pad = Spacing(prevY, c.YPosition())
			}
			prevY, havePrev = c.YPosition(), true
		}
		fragments = append(fragments, Render(c, pad))
	}
	return strings.Join(fragments, "\n\n")
}

func renderLabel(c component.Component) string {
	return fmt.Sprintf(`Text("%s")`, c.Text)
}

func renderButton(c component.Component) string {
	return lines(
		fmt.Sprintf(`Button(action: { print("%s tapped!") }) {`, c.Text),
		indentUnit+fmt.Sprintf(`Text("%s")`, c.Text),
		"}",
	)
}

func renderTextField(c component.Component) string {
	return lines(
		fmt.Sprintf(`TextField("%s", text: .constant(""))`, c.Text),
		indentUnit+".textFieldStyle(.roundedBorder)",
	)
}

func renderImage(c component.Component) string {
	return lines(
		fmt.Sprintf(`Image("%s")`, c.Text),
		indentUnit+".resizable()",
		indentUnit+".scaledToFit()",
	)
}

func renderTextView(c component.Component) string {
	return fmt.Sprintf(`TextEditor(text: .constant("%s"))`, c.Text)
}

func renderSlider(c component.Component) string {
	return fmt.Sprintf("Slider(value: .constant(%s), in: 0...100)", swiftDouble(c.Value))
}

func renderToggle(c component.Component) string {
	return lines(
		fmt.Sprintf("Toggle(isOn: .constant(%t)) {", c.On),
		indentUnit+`Text("Toggle")`,
		"}",
	)
}

func renderPicker(c component.Component) string {
	quoted := make([]string, len(c.Options))
	for i, o := range c.Options {
		quoted[i] = `"` + o + `"`
	}
	return lines(
		`Picker("Select", selection: .constant(0)) {`,
		indentUnit+fmt.Sprintf("ForEach(0..<%d) { index in", len(c.Options)),
		indentUnit+indentUnit+fmt.Sprintf("Text([%s][index])", strings.Join(quoted, ", ")),
		indentUnit+"}",
		"}",
		".pickerStyle(.wheel)",
	)
}

func renderDatePicker(c component.Component) string {
	secs := float64(c.Date.UnixNano()) / 1e9
	return lines(
		fmt.Sprintf(`DatePicker("Select Date", selection: .constant(Date(timeIntervalSince1970: %s)))`, swiftDouble(secs)),
		indentUnit+".datePickerStyle(.compact)",
	)
}

func renderList(component.Component) string {
	return lines("List {", "}", ".listStyle(.plain)")
}

func renderScrollView(component.Component) string {
	return lines("ScrollView {", "}")
}

func renderSpacer(c component.Component) string {
	return fmt.Sprintf("Spacer().padding(.vertical, %d)", int(c.Height))
}

// renderStack renders children in order without top padding.
func renderStack(name string) renderFunc {
	return func(c component.Component) string {
		out := []string{name + " {"}
		for _, child := range c.Children {
			out = append(out, indent(Render(child, 0), 1))
		}
		out = append(out, "}")
		return lines(out...)
	}
}

func lines(l ...string) string { return strings.Join(l, "\n") }

// indent prefixes every non-empty line of s with depth indentation units.
func indent(s string, depth int) string {
	prefix := strings.Repeat(indentUnit, depth)
	ls := strings.Split(s, "\n")
	for i, l := range ls {
		if l != "" {
			ls[i] = prefix + l
		}
	}
	return strings.Join(ls, "\n")
}

// swiftDouble formats v as a Swift Double literal, e.g. 50.0 or 0.5.
func swiftDouble(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
