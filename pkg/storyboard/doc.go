// Package storyboard reads Interface Builder descriptors (.storyboard and
// .xib files) into a queryable XML tree.
//
// # Overview
//
// A descriptor is an XML document rooted at <document>. Storyboards nest
// their screens as scenes:
//
//	document > scenes > scene > objects > {viewController, navigationController, tabBarController}
//
// while xib files put views directly under document > objects. This package
// owns the parsed tree for the duration of one conversion run and exposes
// the small set of query primitives the mapper and the navigation builder
// need: attribute lookup, first-child and all-children lookup by tag,
// path queries and raw text content.
//
// # Usage
//
//	doc, err := storyboard.Load("Main.storyboard")
//	if err != nil {
//	    return err // coded PARSE_FAILED or FILE_NOT_FOUND
//	}
//	for _, vc := range doc.ViewControllers() {
//	    id, _ := storyboard.Attr(vc, "id")
//	    fmt.Println(id)
//	}
//
// Nodes are [*etree.Element] values. They are read-only by convention:
// nothing in storyswift mutates a loaded document.
package storyboard
