package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/storyswift/pkg/navigation"
)

func flowGraph() navigation.Graph {
	return navigation.Graph{
		Flow: &navigation.Flow{
			ID:   "nav",
			Root: navigation.Screen{ID: "vc1", StoryboardID: "Login"},
			Children: []navigation.Screen{
				{ID: "vc2", StoryboardID: "Home"},
			},
		},
		IgnoredKinds: []string{"modal"},
	}
}

func TestFlowDOT(t *testing.T) {
	dot := FlowDOT(flowGraph(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"screen:vc1" [label="LoginView", penwidth=2];`,
		`"screen:vc2" [label="HomeView"];`,
		`"screen:vc1" -> "screen:vc2";`,
		`label="not followed: modal"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "id: vc1") {
		t.Error("non-detailed labels should not show IDs")
	}
}

func TestFlowDOTDetailed(t *testing.T) {
	dot := FlowDOT(flowGraph(), Options{Detailed: true})
	if !strings.Contains(dot, `label="LoginView\nid: vc1"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestFlowDOTTabs(t *testing.T) {
	g := navigation.Graph{Tabs: []navigation.Tab{
		{Index: 0, ScreenID: "vcA", ClassName: "Feed", Title: "Feed", Icon: "list.bullet", Resolved: true},
		{Index: 1, Title: "tab 2", Icon: "circle"},
	}}
	dot := FlowDOT(g, Options{Detailed: true})

	for _, want := range []string{
		`"screen:TabContentView" [label="TabContentView", penwidth=2];`,
		`"tab:0" [label="FeedView\nid: vcA\nicon: list.bullet"];`,
		`"tab:1" [label="Tab2View\n(unresolved)\nicon: circle", style="rounded,filled,dashed"`,
		`"screen:TabContentView" -> "tab:1" [label="tab 2", fontsize=18];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "not followed") {
		t.Error("no note expected without ignored kinds")
	}
}

func TestFlowDOTEmpty(t *testing.T) {
	dot := FlowDOT(navigation.Graph{}, Options{})
	if strings.Contains(dot, "->") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty graph DOT = %s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s", got)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without a viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	svg, err := RenderSVG(context.Background(), FlowDOT(flowGraph(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "LoginView") {
		t.Error("SVG should contain the root label")
	}
}
