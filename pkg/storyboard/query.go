package storyboard

import (
	"cmp"
	"slices"
	"strings"

	"github.com/beevik/etree"
)

// Query returns the direct children of n with the given tag, in document order.
func Query(n Node, tag string) []Node {
	if n == nil {
		return nil
	}
	return n.SelectElements(tag)
}

// First returns the first direct child of n with the given tag, or nil.
func First(n Node, tag string) Node {
	if n == nil {
		return nil
	}
	return n.SelectElement(tag)
}

// FirstWhere returns the first direct child of n with the given tag whose
// attribute key equals value, or nil.
func FirstWhere(n Node, tag, key, value string) Node {
	for _, c := range Query(n, tag) {
		if v, ok := Attr(c, key); ok && v == value {
			return c
		}
	}
	return nil
}

// Attr looks up an attribute. The boolean distinguishes an absent attribute
// from one that is present but empty.
func Attr(n Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	a := n.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// AttrOr returns the attribute value, or def when it is absent.
func AttrOr(n Node, name, def string) string {
	if v, ok := Attr(n, name); ok {
		return v
	}
	return def
}

// Attrs copies all attributes of n into a map.
func Attrs(n Node) map[string]string {
	out := make(map[string]string)
	if n == nil {
		return out
	}
	for _, a := range n.Attr {
		out[a.Key] = a.Value
	}
	return out
}

// Text returns the character data directly inside n.
func Text(n Node) string {
	if n == nil {
		return ""
	}
	return n.Text()
}

// Tag returns the element name of n, or "" for nil.
func Tag(n Node) string {
	if n == nil {
		return ""
	}
	return n.Tag
}

// Find evaluates an etree path relative to n, e.g. ".//subviews/*" or
// "segue[@relationship='viewControllers']". Matches are returned in
// document order. Invalid paths match nothing.
func Find(n Node, path string) []Node {
	if n == nil {
		return nil
	}
	p, err := etree.CompilePath(path)
	if err != nil {
		return nil
	}
	return inDocumentOrder(n.FindElementsPath(p), preorderIndex(n))
}

// preorderIndex numbers n and its descendants in document order.
func preorderIndex(n Node) map[Node]int {
	idx := map[Node]int{n: 0}
	for i, d := range Descendants(n) {
		idx[d] = i + 1
	}
	return idx
}

// inDocumentOrder sorts nodes by idx. etree walks "//" breadth first;
// callers rely on descriptor order instead.
func inDocumentOrder(nodes []Node, idx map[Node]int) []Node {
	slices.SortStableFunc(nodes, func(a, b Node) int {
		return cmp.Compare(idx[a], idx[b])
	})
	return nodes
}

// Descendants returns every element below n in pre-order (document order),
// not including n itself.
func Descendants(n Node) []Node {
	var out []Node
	var walk func(Node)
	walk = func(e Node) {
		for _, c := range e.ChildElements() {
			out = append(out, c)
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// Pretty renders n as indented XML for diagnostics.
func Pretty(n Node) string {
	if n == nil {
		return ""
	}
	doc := etree.NewDocument()
	doc.SetRoot(n.Copy())
	doc.Indent(2)
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
