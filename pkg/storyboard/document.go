package storyboard

import (
	"os"

	"github.com/beevik/etree"

	"github.com/matzehuels/storyswift/pkg/errors"
)

// Node is one element of a loaded descriptor.
type Node = *etree.Element

// Document is a parsed descriptor.
type Document struct {
	xml   *etree.Document
	ids   map[string]Node
	order map[Node]int
	path  string
}

// Load reads and parses the descriptor at path.
func Load(path string) (*Document, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.path = path
	return doc, nil
}

// ReadFile reads the raw descriptor at path.
// A missing file yields FILE_NOT_FOUND, any other read failure yields
// PARSE_FAILED; both wrap the underlying cause.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "descriptor %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read %s", path)
	}
	return data, nil
}

// Parse parses descriptor XML held in memory.
func Parse(data []byte) (*Document, error) {
	x := etree.NewDocument()
	if err := x.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "malformed descriptor XML")
	}
	return &Document{xml: x}, nil
}

// Path returns the file the document was loaded from, or "" for
// documents parsed from memory.
func (d *Document) Path() string { return d.path }

// Root returns the <document> element, or nil for an empty document.
// Callers treat a nil root as "nothing to convert".
func (d *Document) Root() Node {
	if d == nil || d.xml == nil {
		return nil
	}
	return d.xml.Root()
}

// Find evaluates an etree path against the whole document, e.g. "//segue".
// Matches are returned in document order. Invalid paths match nothing.
func (d *Document) Find(path string) []Node {
	if d.Root() == nil {
		return nil
	}
	p, err := etree.CompilePath(path)
	if err != nil {
		return nil
	}
	if d.order == nil {
		d.order = preorderIndex(d.Root())
	}
	return inDocumentOrder(d.xml.FindElementsPath(p), d.order)
}

// ElementByID returns the element whose id attribute equals id.
// The id index is built on first use.
func (d *Document) ElementByID(id string) (Node, bool) {
	if d.Root() == nil || id == "" {
		return nil, false
	}
	if d.ids == nil {
		d.ids = make(map[string]Node)
		for _, n := range Descendants(d.Root()) {
			if v, ok := Attr(n, "id"); ok {
				if _, dup := d.ids[v]; !dup {
					d.ids[v] = n
				}
			}
		}
	}
	n, ok := d.ids[id]
	return n, ok
}

// sceneObjects returns every document > scenes > scene > objects element.
func (d *Document) sceneObjects() []Node {
	root := d.Root()
	if root == nil {
		return nil
	}
	scenes := First(root, "scenes")
	if scenes == nil {
		return nil
	}
	var objects []Node
	for _, scene := range Query(scenes, "scene") {
		objects = append(objects, Query(scene, "objects")...)
	}
	return objects
}

func (d *Document) sceneObjectsTagged(tag string) []Node {
	var out []Node
	for _, objects := range d.sceneObjects() {
		out = append(out, Query(objects, tag)...)
	}
	return out
}

// ViewControllers returns the viewController scenes in document order.
func (d *Document) ViewControllers() []Node {
	return d.sceneObjectsTagged("viewController")
}

// NavigationControllers returns the navigationController scenes.
func (d *Document) NavigationControllers() []Node {
	return d.sceneObjectsTagged("navigationController")
}

// TabBarControllers returns the tabBarController scenes.
func (d *Document) TabBarControllers() []Node {
	return d.sceneObjectsTagged("tabBarController")
}

// StandaloneViews returns the top-level views of a xib file
// (document > objects > view).
func (d *Document) StandaloneViews() []Node {
	root := d.Root()
	if root == nil {
		return nil
	}
	objects := First(root, "objects")
	if objects == nil {
		return nil
	}
	return Query(objects, "view")
}

// TableCellContentView returns the content view of the first table view
// cell of a xib file, or nil.
func (d *Document) TableCellContentView() Node {
	root := d.Root()
	if root == nil {
		return nil
	}
	cell := First(First(root, "objects"), "tableViewCell")
	return First(cell, "tableViewCellContentView")
}
