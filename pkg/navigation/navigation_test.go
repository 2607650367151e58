package navigation

import (
	"reflect"
	"testing"

	"github.com/matzehuels/storyswift/pkg/storyboard"
)

const flowStoryboard = `<document>
  <scenes>
    <scene sceneID="s1">
      <objects>
        <navigationController id="nav1">
          <connections>
            <segue destination="vc1" kind="relationship" relationship="rootViewController" id="rel1"/>
          </connections>
        </navigationController>
      </objects>
    </scene>
    <scene sceneID="s2">
      <objects>
        <viewController storyboardIdentifier="Login" id="vc1">
          <connections>
            <segue destination="vc2" kind="show" id="seg1"/>
            <segue destination="vc3" kind="presentation" id="seg2"/>
            <segue destination="vc9" kind="push" id="seg3"/>
            <segue destination="vc4" kind="modal" id="seg4"/>
            <segue destination="vc2" kind="embed" id="seg5"/>
          </connections>
        </viewController>
      </objects>
    </scene>
    <scene sceneID="s3">
      <objects>
        <viewController storyboardIdentifier="Home" id="vc2"/>
      </objects>
    </scene>
    <scene sceneID="s4">
      <objects>
        <viewController id="vc3"/>
      </objects>
    </scene>
    <scene sceneID="s5">
      <objects>
        <viewController storyboardIdentifier="Modal" id="vc4"/>
      </objects>
    </scene>
  </scenes>
</document>`

func parse(t *testing.T, xml string) *storyboard.Document {
	t.Helper()
	doc, err := storyboard.Parse([]byte(xml))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return doc
}

func TestCollectEdgesOrder(t *testing.T) {
	edges := CollectEdges(parse(t, flowStoryboard))

	var kinds []EdgeKind
	for _, e := range edges {
		if len(kinds) == 0 || kinds[len(kinds)-1] != e.Kind {
			kinds = append(kinds, e.Kind)
		}
	}
	want := []EdgeKind{EdgeNavigationController, EdgeViewController, EdgeSegue}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("edge kind runs = %v, want %v", kinds, want)
	}

	for _, e := range edges {
		if (e.Kind == EdgeViewController) != (e.Node != nil) {
			t.Errorf("edge %s/%s: Node set = %v", e.Kind, e.ID, e.Node != nil)
		}
	}
}

func TestCollectEdgesUnknownID(t *testing.T) {
	edges := CollectEdges(parse(t, `<document><segue kind="show"/></document>`))
	if len(edges) != 1 || edges[0].ID != UnknownID {
		t.Fatalf("edges = %+v, want one with unknown ID", edges)
	}
	if v, _ := edges[0].Attr("kind"); v != "show" {
		t.Errorf("kind attribute = %q, want show", v)
	}
}

func TestBuildFlow(t *testing.T) {
	flow, ok := BuildFlow(CollectEdges(parse(t, flowStoryboard)), DefaultKinds())
	if !ok {
		t.Fatal("BuildFlow() returned false")
	}
	if flow.ID != "vc1" || flow.Root.StoryboardID != "Login" || flow.Root.Node == nil {
		t.Errorf("root = %+v, id %q", flow.Root, flow.ID)
	}

	var got []string
	for _, s := range flow.Children {
		got = append(got, s.ID+":"+s.StoryboardID)
	}
	// vc9 does not resolve, vc4 is reached through "modal" which is not in
	// the default set, embed is never a flow edge.
	want := []string{"vc2:Home", "vc3:Screen"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}

	screens := flow.Screens()
	if len(screens) != 3 || screens[0].ID != "vc1" {
		t.Errorf("Screens() = %+v", screens)
	}
}

func TestBuildFlowCustomKinds(t *testing.T) {
	flow, ok := BuildFlow(CollectEdges(parse(t, flowStoryboard)), NewKindSet("modal"))
	if !ok {
		t.Fatal("BuildFlow() returned false")
	}
	if len(flow.Children) != 1 || flow.Children[0].StoryboardID != "Modal" {
		t.Errorf("children = %+v, want [Modal]", flow.Children)
	}
}

func TestBuildFlowRequiresRoot(t *testing.T) {
	tests := []struct {
		name  string
		edges []Edge
	}{
		{"empty", nil},
		{
			"no root relationship",
			[]Edge{
				{Kind: EdgeViewController, ID: "vc1", Attributes: map[string]string{"id": "vc1"}},
				{Kind: EdgeSegue, ID: "s1", Attributes: map[string]string{"kind": "show", "destination": "vc1"}},
			},
		},
		{
			"root destination unknown",
			[]Edge{
				{Kind: EdgeViewController, ID: "vc1"},
				{Kind: EdgeSegue, ID: "r1", Attributes: map[string]string{"relationship": "rootViewController", "destination": "vc2"}},
			},
		},
		{
			"root destination missing",
			[]Edge{
				{Kind: EdgeViewController, ID: "vc1"},
				{Kind: EdgeSegue, ID: "r1", Attributes: map[string]string{"relationship": "rootViewController"}},
			},
		},
		{
			"root points at navigation controller",
			[]Edge{
				{Kind: EdgeNavigationController, ID: "nav1"},
				{Kind: EdgeSegue, ID: "r1", Attributes: map[string]string{"relationship": "rootViewController", "destination": "nav1"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if flow, ok := BuildFlow(tt.edges, DefaultKinds()); ok || flow != nil {
				t.Errorf("BuildFlow() = %+v, %v; want nil, false", flow, ok)
			}
		})
	}
}

func TestBuildFlowFirstRootWins(t *testing.T) {
	edges := []Edge{
		{Kind: EdgeViewController, ID: "a", Attributes: map[string]string{"storyboardIdentifier": "A"}},
		{Kind: EdgeViewController, ID: "b", Attributes: map[string]string{"storyboardIdentifier": "B"}},
		{Kind: EdgeSegue, ID: "r1", Attributes: map[string]string{"relationship": "rootViewController", "destination": "b"}},
		{Kind: EdgeSegue, ID: "r2", Attributes: map[string]string{"relationship": "rootViewController", "destination": "a"}},
	}
	flow, ok := BuildFlow(edges, DefaultKinds())
	if !ok || flow.Root.StoryboardID != "B" {
		t.Errorf("root = %+v, want B", flow)
	}
	if len(flow.Children) != 0 {
		t.Errorf("children = %+v, want none", flow.Children)
	}
}

func TestUnacceptedKinds(t *testing.T) {
	got := UnacceptedKinds(CollectEdges(parse(t, flowStoryboard)), DefaultKinds())
	want := []string{"modal", "embed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnacceptedKinds() = %v, want %v", got, want)
	}
}

func TestKindSet(t *testing.T) {
	s := DefaultKinds()
	for _, k := range []string{"push", "show", "presentation", "model"} {
		if !s.Has(k) {
			t.Errorf("DefaultKinds() missing %q", k)
		}
	}
	if s.Has("modal") {
		t.Error("DefaultKinds() should not contain modal")
	}
	var empty KindSet
	if empty.Has("show") {
		t.Error("nil KindSet should be empty")
	}
}

func TestFlowScreensNil(t *testing.T) {
	var f *Flow
	if f.Screens() != nil {
		t.Error("nil Flow should have no screens")
	}
}
