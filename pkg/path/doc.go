// Package path provides stable, serializable addresses into a content tree.
//
// A Path is an ordered sequence of components, each of which is a positional
// index, a child name or the parent marker. Paths are either absolute
// (resolved against the root) or relative (resolved against the object that
// holds them).
//
// # String Form
//
//	"knot.stitch.0"   // absolute: name, name, index
//	".^.2"            // relative: parent, then index 2
//	"."               // relative self
//	""                // the root
//
// Names contain no "." and are not made only of digits (see IsValidName), so
// that every path survives a String/Parse round-trip. Name panics on anything
// else, and content containers refuse such names.
//
// # Usage
//
//	p, err := path.Parse("knot.stitch.0")
//	entry := p.Join(path.NewRelative(path.Parent(), path.Index(1))) // knot.stitch.1
package path
