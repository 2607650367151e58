package component

import (
	"cmp"
	"slices"

	"github.com/matzehuels/storyswift/pkg/storyboard"
)

// DefaultPlaceholderLabel is the boilerplate label text dropped from screens
// when it is collapsed to zero height.
const DefaultPlaceholderLabel = "Welcome! Please login"

// ScreenOptions controls how a screen's components are collected.
type ScreenOptions struct {
	// PlaceholderLabel is the label text filtered out when the label's
	// frame height is at most 1. Empty means DefaultPlaceholderLabel.
	PlaceholderLabel string
	// Mapper is used for every node. The zero value uses time.Now.
	Mapper Mapper
}

// ScreenComponents maps every element below screen in document order,
// drops collapsed placeholder labels and sorts the rest by [Component.YPosition].
// The sort is stable: components at the same position keep descriptor order.
func ScreenComponents(screen storyboard.Node, opts ScreenOptions) []Component {
	placeholder := opts.PlaceholderLabel
	if placeholder == "" {
		placeholder = DefaultPlaceholderLabel
	}

	var out []Component
	for _, n := range storyboard.Descendants(screen) {
		c, ok := opts.Mapper.MapNode(n)
		if !ok {
			continue
		}
		if c.Kind == KindLabel && c.Text == placeholder && c.Frame.Height <= 1 {
			continue
		}
		out = append(out, c)
	}

	slices.SortStableFunc(out, func(a, b Component) int {
		return cmp.Compare(a.YPosition(), b.YPosition())
	})
	return out
}

// WithoutStackChildren removes components owned by a top-level HStack.
// A component is removed when its ID matches an immediate child of any
// HStack in list; VStack children are left in place.
func WithoutStackChildren(list []Component) []Component {
	owned := make(map[string]struct{})
	for _, c := range list {
		if c.Kind != KindHStack {
			continue
		}
		for _, child := range c.Children {
			owned[child.ID] = struct{}{}
		}
	}
	if len(owned) == 0 {
		return list
	}

	out := make([]Component, 0, len(list))
	for _, c := range list {
		if _, ok := owned[c.ID]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}
