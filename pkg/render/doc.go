// Package render provides visualization rendering for navigation graphs.
//
// # Overview
//
// The [nodelink] subpackage turns a navigation graph into Graphviz DOT and
// SVG. This package holds the generic format conversion shared by every
// renderer:
//
//	dot := nodelink.FlowDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg).
//
// [nodelink]: github.com/matzehuels/storyswift/pkg/render/nodelink
package render
