package navigation

import (
	"fmt"

	"github.com/matzehuels/storyswift/pkg/storyboard"
)

// TabRelationship marks the segues from a tab bar controller to its tabs.
const TabRelationship = "viewControllers"

// DefaultTabIcon is the SF Symbol used for tabs without an image.
const DefaultTabIcon = "house"

// TabEntry is one tab of a tab bar controller.
type TabEntry struct {
	// NavigationID is the segue destination as written in the descriptor.
	NavigationID string
	// ScreenID is the id of the resolved viewController. It equals
	// NavigationID unless the tab points at a navigation controller.
	ScreenID string
	// SegueID is the id of the relationship segue.
	SegueID string
	// ClassName is the viewController's customClass, or "".
	ClassName string
	// Node is the resolved viewController, or nil when the destination
	// does not resolve.
	Node storyboard.Node
	// Container is the navigation controller the tab points at, if any.
	Container storyboard.Node
}

// Resolved reports whether the tab's destination was found.
func (e TabEntry) Resolved() bool { return e.Node != nil }

// TabItem returns the title and icon for the tab at the 0-based index.
// The tabBarItem of the screen wins over the one of its navigation
// controller; missing values default to "tab N" and [DefaultTabIcon].
func (e TabEntry) TabItem(index int) (title, icon string) {
	title = fmt.Sprintf("tab %d", index+1)
	icon = DefaultTabIcon

	item := storyboard.First(e.Node, "tabBarItem")
	if item == nil {
		item = storyboard.First(e.Container, "tabBarItem")
	}
	if v, ok := storyboard.Attr(item, "title"); ok {
		title = v
	}
	if v, ok := storyboard.Attr(item, "image"); ok {
		icon = v
	}
	return title, icon
}

// TabEntries returns one entry per viewControllers relationship segue of
// every tab bar controller in doc, in segue order. Entries are emitted even
// when the destination does not resolve.
func TabEntries(doc *storyboard.Document) []TabEntry {
	var entries []TabEntry
	for _, tbc := range doc.Find("//tabBarController") {
		for _, segue := range storyboard.Find(tbc, ".//segue[@relationship='"+TabRelationship+"']") {
			dest := storyboard.AttrOr(segue, "destination", "")
			entry := TabEntry{
				NavigationID: dest,
				ScreenID:     dest,
				SegueID:      storyboard.AttrOr(segue, "id", ""),
			}
			if n, ok := doc.ElementByID(dest); ok {
				switch n.Tag {
				case "viewController":
					entry.Node = n
				case "navigationController":
					entry.Container = n
					entry.Node = rootOf(doc, n)
					if entry.Node != nil {
						entry.ScreenID = storyboard.AttrOr(entry.Node, "id", dest)
					}
				}
			}
			entry.ClassName = storyboard.AttrOr(entry.Node, "customClass", "")
			entries = append(entries, entry)
		}
	}
	return entries
}

// rootOf follows a navigation controller's rootViewController segue.
func rootOf(doc *storyboard.Document, nav storyboard.Node) storyboard.Node {
	for _, segue := range storyboard.Find(nav, ".//segue[@relationship='"+RootRelationship+"']") {
		n, ok := doc.ElementByID(storyboard.AttrOr(segue, "destination", ""))
		if ok && n.Tag == "viewController" {
			return n
		}
	}
	return nil
}
