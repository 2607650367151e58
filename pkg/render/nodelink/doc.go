// Package nodelink renders navigation graphs as node-link diagrams.
//
// # Overview
//
// Screens appear as rounded boxes named after the view they generate. A
// navigation flow is drawn as its root screen with an arrow to every child
// screen. Tabs hang off a TabContentView node, one labeled arrow per tab.
//
// # Usage
//
//	dot := nodelink.FlowDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output convert the SVG with [render.ToPDF] or
// [render.ToPNG].
//
// # Options
//
//   - Detailed: node labels also show element IDs and tab icons
//
// Unresolved tabs are drawn dashed and grey. Segue kinds that were not
// followed are listed in a note below the graph.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
//
// [render.ToPDF]: github.com/matzehuels/storyswift/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/storyswift/pkg/render.ToPNG
package nodelink
