// Package component maps descriptor nodes onto a small typed component model.
//
// A [Component] is a tagged value keyed by [Kind]. Controls carry a payload
// (text, value, options, date), a frame and their layout constraints already
// translated to modifier text. Stack views become HStack or VStack
// components holding their mapped subviews, recursively.
//
// [MapNode] handles one node and reports false for tags it does not know;
// that is the normal way irrelevant nodes (connections, colors, metadata)
// are skipped. [ScreenComponents] applies the per-screen ordering policy and
// [WithoutStackChildren] removes components that an HStack already renders.
package component
