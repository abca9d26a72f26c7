package content

import (
	"github.com/aretw0/inkling/pkg/path"
)

// Object is a node of the content tree.
// Implementations embed Base, which carries the parent link.
type Object interface {
	// Parent returns the owning container, or nil for a root or detached object.
	Parent() *Container
	// Path returns the absolute path from the root to this object.
	Path() path.Path

	base() *Base
}

// Nameable is an object that may be addressed by name within its parent.
type Nameable interface {
	Object
	Name() string
}

// TextContent is implemented by leaves holding literal story text.
// The hierarchy dump renders them quoted.
type TextContent interface {
	Object
	Text() string
}

// HasValidName reports whether n carries a non-empty name.
func HasValidName(n Nameable) bool {
	return n != nil && n.Name() != ""
}

// Base holds the non-owning parent link shared by every tree node.
// Embed it to implement Object.
type Base struct {
	parent *Container
	// self is the embedding object, recorded on attach so Path can
	// locate it inside the parent.
	self Object
}

// Parent returns the owning container.
func (b *Base) Parent() *Container { return b.parent }

func (b *Base) base() *Base { return b }

func (b *Base) attach(parent *Container, self Object) {
	b.parent = parent
	b.self = self
}

func (b *Base) detach() {
	b.parent = nil
}

// Path walks the parent chain to the root. Named containers contribute their
// name, everything else its index in the parent's content. An anonymous
// object missing from its parent's content ends the walk, leaving only the
// components below that link; the mutation API never produces one.
func (b *Base) Path() path.Path {
	if b.parent == nil {
		return path.Path{}
	}

	var comps []path.Component
	var child Object = b.self
	for container := b.parent; container != nil; container = container.parent {
		if n, ok := child.(Nameable); ok && HasValidName(n) {
			comps = append(comps, path.Name(n.Name()))
		} else {
			idx := container.indexOf(child)
			if idx < 0 {
				break
			}
			comps = append(comps, path.Index(idx))
		}
		child = container
	}

	for i, j := 0, len(comps)-1; i < j; i, j = i+1, j-1 {
		comps[i], comps[j] = comps[j], comps[i]
	}
	return path.New(comps...)
}

// RootContentContainer returns the container at the top of obj's parent chain.
// It returns nil when the topmost object is not a container.
func RootContentContainer(obj Object) *Container {
	if obj == nil {
		return nil
	}
	var ancestor Object = obj
	for ancestor.Parent() != nil {
		ancestor = ancestor.Parent()
	}
	c, _ := ancestor.(*Container)
	return c
}

// ResolvePath resolves p from obj. Relative paths start at obj when it is a
// container, otherwise at its parent, in which case a leading parent marker
// is consumed by that step. Absolute paths start at the root.
func ResolvePath(obj Object, p path.Path) SearchResult {
	if p.IsRelative() {
		nearest, ok := obj.(*Container)
		if !ok {
			nearest = obj.Parent()
			if nearest == nil {
				return SearchResult{Obj: obj, Approximate: true}
			}
			if head, ok := p.Head(); ok && head.IsParent() {
				p = p.Tail()
			}
		}
		return nearest.ContentAtPath(p)
	}

	root := RootContentContainer(obj)
	if root == nil {
		return SearchResult{Obj: obj, Approximate: true}
	}
	return root.ContentAtPath(p)
}

// ConvertPathToRelative expresses global relative to obj's own path, going up
// through the last shared component. Paths with nothing in common are
// returned unchanged.
func ConvertPathToRelative(obj Object, global path.Path) path.Path {
	own := obj.Path()

	minLen := min(global.Len(), own.Len())
	lastShared := -1
	for i := 0; i < minLen; i++ {
		if own.Component(i) != global.Component(i) {
			break
		}
		lastShared = i
	}
	if lastShared == -1 {
		return global
	}

	upward := (own.Len() - 1) - lastShared
	comps := make([]path.Component, 0, upward+global.Len()-lastShared-1)
	for i := 0; i < upward; i++ {
		comps = append(comps, path.Parent())
	}
	for i := lastShared + 1; i < global.Len(); i++ {
		comps = append(comps, global.Component(i))
	}
	return path.NewRelative(comps...)
}

// CompactPathString returns whichever of the relative or global form of p is
// shorter when written out from obj.
func CompactPathString(obj Object, p path.Path) string {
	var globalStr, relativeStr string
	if p.IsRelative() {
		relativeStr = p.ComponentsString()
		globalStr = obj.Path().Join(p).ComponentsString()
	} else {
		relativeStr = ConvertPathToRelative(obj, p).ComponentsString()
		globalStr = p.ComponentsString()
	}

	if len(relativeStr) < len(globalStr) {
		return relativeStr
	}
	return globalStr
}
