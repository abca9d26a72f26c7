// Package content implements the story content tree.
//
// A tree is made of Containers holding leaf objects (values, text) and nested
// Containers. Every object knows its parent, so it can compute its own Path,
// and every Container can resolve a Path back to an object.
//
//	root := content.NewContainer("")
//	knot := content.NewContainer("knot")
//	_ = root.AddContent(knot)
//	res := root.ContentAtPath(path.MustParse("knot"))
//
// Attachment is exclusive: an object belongs to at most one container, and
// names are unique within a container. Mutations that would break either rule
// fail with a *MutationError.
//
// Trees are built once and then read. Reads from several goroutines are safe
// when no mutation runs concurrently.
package content
