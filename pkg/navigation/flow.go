package navigation

import (
	"github.com/matzehuels/storyswift/pkg/storyboard"
)

// RootRelationship marks the segue from a navigation controller to its
// first screen.
const RootRelationship = "rootViewController"

// DefaultStoryboardID names screens without a storyboardIdentifier.
const DefaultStoryboardID = "Screen"

// KindSet is the set of segue kinds that add a child screen to a flow.
type KindSet map[string]struct{}

// NewKindSet builds a KindSet from a list of kinds.
func NewKindSet(kinds ...string) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether kind is in the set.
func (s KindSet) Has(kind string) bool {
	_, ok := s[kind]
	return ok
}

// DefaultKinds returns the accepted segue kinds.
//
// "model" is kept exactly as the converter has always matched it. Interface
// Builder writes modal segues as kind="presentation" (or "modal" in older
// files), so a descriptor using "modal" is only followed when the set is
// configured to include it; see [UnacceptedKinds].
func DefaultKinds() KindSet {
	return NewKindSet("push", "show", "presentation", "model")
}

// Screen is one reachable screen of a flow.
type Screen struct {
	ID           string          `json:"id" yaml:"id"`
	StoryboardID string          `json:"storyboard_id" yaml:"storyboard_id"`
	Node         storyboard.Node `json:"-" yaml:"-"`
}

// Flow is a navigation controller's root screen and the screens reachable
// from it.
type Flow struct {
	ID       string   `json:"id" yaml:"id"`
	Root     Screen   `json:"root" yaml:"root"`
	Children []Screen `json:"children,omitempty" yaml:"children,omitempty"`
}

// Screens returns the root followed by the children.
func (f *Flow) Screens() []Screen {
	if f == nil {
		return nil
	}
	out := make([]Screen, 0, 1+len(f.Children))
	out = append(out, f.Root)
	return append(out, f.Children...)
}

// BuildFlow reconstructs the navigation flow from an edge list.
//
// The root is the destination of the first segue with a rootViewController
// relationship. It must resolve to a viewController edge, otherwise there
// is no flow and BuildFlow returns false. Children are the destinations of
// segues whose kind is in kinds, in segue order; destinations that are not
// viewControllers are skipped.
func BuildFlow(edges []Edge, kinds KindSet) (*Flow, bool) {
	vcs := make(map[string]Edge)
	for _, e := range edgesOfKind(edges, EdgeViewController) {
		if _, dup := vcs[e.ID]; !dup {
			vcs[e.ID] = e
		}
	}
	segues := edgesOfKind(edges, EdgeSegue)

	var rootID string
	found := false
	for _, s := range segues {
		if rel, _ := s.Attr("relationship"); rel == RootRelationship {
			rootID, found = s.Attr("destination")
			break
		}
	}
	if !found {
		return nil, false
	}
	rootVC, ok := vcs[rootID]
	if !ok {
		return nil, false
	}

	flow := &Flow{ID: rootID, Root: screenFor(rootVC)}
	for _, s := range segues {
		kind, _ := s.Attr("kind")
		if !kinds.Has(kind) {
			continue
		}
		dest, ok := s.Attr("destination")
		if !ok {
			continue
		}
		if vc, ok := vcs[dest]; ok {
			flow.Children = append(flow.Children, screenFor(vc))
		}
	}
	return flow, true
}

func screenFor(vc Edge) Screen {
	sid, ok := vc.Attr("storyboardIdentifier")
	if !ok {
		sid = DefaultStoryboardID
	}
	return Screen{ID: vc.ID, StoryboardID: sid, Node: vc.Node}
}

// UnacceptedKinds lists segue kinds present in edges that kinds does not
// accept, in first-seen order. Relationship segues are not reported.
func UnacceptedKinds(edges []Edge, kinds KindSet) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range edgesOfKind(edges, EdgeSegue) {
		kind, ok := s.Attr("kind")
		if !ok || kind == "relationship" || kinds.Has(kind) || seen[kind] {
			continue
		}
		seen[kind] = true
		out = append(out, kind)
	}
	return out
}
