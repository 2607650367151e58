package navigation

import (
	"github.com/matzehuels/storyswift/pkg/storyboard"
)

// EdgeKind names the structural query an [Edge] came from.
type EdgeKind string

const (
	EdgeNavigationController EdgeKind = "navigationController"
	EdgeViewController       EdgeKind = "viewController"
	EdgeRelationship         EdgeKind = "relationship"
	EdgeSegue                EdgeKind = "segue"
)

// edgeQueries run in this order; edge order in the result follows it.
var edgeQueries = []struct {
	kind EdgeKind
	path string
}{
	{EdgeNavigationController, "//navigationController"},
	{EdgeViewController, "//viewController"},
	{EdgeRelationship, "//relationship"},
	{EdgeSegue, "//segue"},
}

// UnknownID is used for edges whose node has no id attribute.
const UnknownID = "unknown"

// Edge is one navigation-relevant node of a descriptor: a screen
// container or a transition between screens.
type Edge struct {
	Kind EdgeKind
	ID   string
	// Node is set for viewController edges only.
	Node       storyboard.Node
	Attributes map[string]string
}

// Attr returns an attribute of the edge's node.
func (e Edge) Attr(name string) (string, bool) {
	v, ok := e.Attributes[name]
	return v, ok
}

// CollectEdges runs the four edge queries against doc and returns every
// match. Within one query, edges are in document order.
func CollectEdges(doc *storyboard.Document) []Edge {
	var edges []Edge
	for _, q := range edgeQueries {
		for _, n := range doc.Find(q.path) {
			e := Edge{
				Kind:       q.kind,
				ID:         storyboard.AttrOr(n, "id", UnknownID),
				Attributes: storyboard.Attrs(n),
			}
			if q.kind == EdgeViewController {
				e.Node = n
			}
			edges = append(edges, e)
		}
	}
	return edges
}

func edgesOfKind(edges []Edge, kind EdgeKind) []Edge {
	var out []Edge
	for _, e := range edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
