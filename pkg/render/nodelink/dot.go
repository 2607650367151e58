package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/storyswift/pkg/navigation"
	"github.com/matzehuels/storyswift/pkg/swiftui"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds element IDs and tab icons to node labels.
	Detailed bool
}

// FlowDOT converts a navigation graph to Graphviz DOT format.
// The result can be rendered with [RenderSVG].
func FlowDOT(g navigation.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	if g.Flow != nil {
		writeFlow(&buf, g.Flow, opts)
	}
	if len(g.Tabs) > 0 {
		writeTabs(&buf, g.Tabs, opts)
	}
	if len(g.IgnoredKinds) > 0 {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  %q [shape=note, style=filled, fillcolor=lightyellow, fontsize=18, label=%q];\n",
			"ignored", "not followed: "+strings.Join(g.IgnoredKinds, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeFlow(buf *bytes.Buffer, f *navigation.Flow, opts Options) {
	buf.WriteString("\n")
	root := nodeID(f.Root.ID)
	fmt.Fprintf(buf, "  %q [label=%q, penwidth=2];\n", root, screenLabel(f.Root, opts.Detailed))
	for _, c := range f.Children {
		fmt.Fprintf(buf, "  %q [label=%q];\n", nodeID(c.ID), screenLabel(c, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, c := range f.Children {
		fmt.Fprintf(buf, "  %q -> %q;\n", root, nodeID(c.ID))
	}
}

func writeTabs(buf *bytes.Buffer, tabs []navigation.Tab, opts Options) {
	buf.WriteString("\n")
	container := nodeID(swiftui.TabContainerName)
	fmt.Fprintf(buf, "  %q [label=%q, penwidth=2];\n", container, swiftui.TabContainerName)
	for _, t := range tabs {
		attrs := []string{fmt.Sprintf("label=%q", tabLabel(t, opts.Detailed))}
		if !t.Resolved {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
		}
		fmt.Fprintf(buf, "  %q [%s];\n", tabNodeID(t), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, t := range tabs {
		fmt.Fprintf(buf, "  %q -> %q [label=%q, fontsize=18];\n", container, tabNodeID(t), t.Title)
	}
}

func nodeID(id string) string { return "screen:" + id }

// tabNodeID keys tabs by position so unresolved tabs stay distinct.
func tabNodeID(t navigation.Tab) string { return fmt.Sprintf("tab:%d", t.Index) }

func screenLabel(s navigation.Screen, detailed bool) string {
	name := swiftui.ScreenName(s)
	if !detailed {
		return name
	}
	return name + "\nid: " + s.ID
}

func tabLabel(t navigation.Tab, detailed bool) string {
	name := t.ClassName
	if name == "" {
		name = fmt.Sprintf("Tab%d", t.Index+1)
	}
	name += "View"
	if !t.Resolved {
		name += "\n(unresolved)"
	}
	if !detailed {
		return name
	}
	parts := []string{name}
	if t.ScreenID != "" {
		parts = append(parts, "id: "+t.ScreenID)
	}
	parts = append(parts, "icon: "+t.Icon)
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// The result can be converted further with render.ToPDF or render.ToPNG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg tag with one whose size
// matches its viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
