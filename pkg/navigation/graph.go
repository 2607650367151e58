package navigation

import (
	"github.com/matzehuels/storyswift/pkg/storyboard"
)

// Graph is the navigation topology of a descriptor without any node
// handles, so it can be cached and serialized.
type Graph struct {
	// Flow is nil when no root relationship resolves.
	Flow *Flow `json:"flow,omitempty" yaml:"flow,omitempty"`
	Tabs []Tab `json:"tabs,omitempty" yaml:"tabs,omitempty"`
	// IgnoredKinds lists segue kinds that did not add a child screen.
	IgnoredKinds []string `json:"ignored_kinds,omitempty" yaml:"ignored_kinds,omitempty"`
}

// Tab is the serializable form of a [TabEntry].
type Tab struct {
	Index        int    `json:"index" yaml:"index"`
	NavigationID string `json:"navigation_id" yaml:"navigation_id"`
	ScreenID     string `json:"screen_id" yaml:"screen_id"`
	ClassName    string `json:"class_name,omitempty" yaml:"class_name,omitempty"`
	Title        string `json:"title" yaml:"title"`
	Icon         string `json:"icon" yaml:"icon"`
	Resolved     bool   `json:"resolved" yaml:"resolved"`
}

// Empty reports whether the graph has neither a flow nor tabs.
func (g Graph) Empty() bool { return g.Flow == nil && len(g.Tabs) == 0 }

// BuildGraph extracts the flow and the tab entries of doc.
func BuildGraph(doc *storyboard.Document, kinds KindSet) Graph {
	edges := CollectEdges(doc)
	var g Graph
	if flow, ok := BuildFlow(edges, kinds); ok {
		g.Flow = flow
	}
	g.IgnoredKinds = UnacceptedKinds(edges, kinds)
	for i, e := range TabEntries(doc) {
		title, icon := e.TabItem(i)
		g.Tabs = append(g.Tabs, Tab{
			Index:        i,
			NavigationID: e.NavigationID,
			ScreenID:     e.ScreenID,
			ClassName:    e.ClassName,
			Title:        title,
			Icon:         icon,
			Resolved:     e.Resolved(),
		})
	}
	return g
}
