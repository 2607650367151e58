// Package swiftui generates SwiftUI source from mapped components.
//
// Rendering is table driven: every [component.Kind] has one function that
// produces its view expression, and [Render] appends the top padding and
// constraint modifiers. [Body] lays out a screen, computing the padding
// between top-level siblings from their vertical positions:
//
//	padding = clamp(y - previousY, MinSpacing, MaxSpacing)
//
// The first component and Spacers get none. Stack children are rendered by
// their stack and are removed from the top level.
//
// Units are complete Swift files built from fixed templates:
//
//   - [Flat]: one view per screen
//   - [Flow]: a NavigationStack root with links plus one view per child screen
//   - [Tabs]: one view per tab plus a TabContentView container
//
// Generated code is not compiled or checked. Payload text is interpolated
// as written in the descriptor.
package swiftui
