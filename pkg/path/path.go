package path

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPath is returned when a path string cannot be parsed.
var ErrInvalidPath = errors.New("invalid path")

const (
	separator = "."
	parentID  = "^"
)

// Path is an immutable, ordered sequence of addressing components.
// The zero value is the empty absolute path, which addresses the root.
type Path struct {
	components []Component
	relative   bool
}

// New creates an absolute path from the given components.
func New(components ...Component) Path {
	return Path{components: clone(components)}
}

// NewRelative creates a relative path from the given components.
func NewRelative(components ...Component) Path {
	return Path{components: clone(components), relative: true}
}

// Self returns the relative path that addresses the object it is resolved against.
func Self() Path {
	return Path{relative: true}
}

// Parse converts the textual form of a path into a Path.
//
// Components are separated by ".", a leading "." marks a relative path, "^" is
// the parent marker and all-digit components are indices. A lone "." is Self
// and the empty string is the empty absolute path.
func Parse(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}

	var p Path
	if strings.HasPrefix(s, separator) {
		p.relative = true
		s = s[1:]
	}
	if s == "" {
		return p, nil
	}

	parts := strings.Split(s, separator)
	p.components = make([]Component, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			return Path{}, fmt.Errorf("%w: empty component %d in %q", ErrInvalidPath, i, s)
		}
		comp, err := parseComponent(part)
		if err != nil {
			return Path{}, err
		}
		p.components = append(p.components, comp)
	}
	return p, nil
}

// MustParse is like Parse but panics on malformed input.
// Intended for literals in tests and fixtures.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of components.
func (p Path) Len() int { return len(p.components) }

// IsRelative reports whether the path is resolved against an object rather than the root.
func (p Path) IsRelative() bool { return p.relative }

// Component returns the i-th component. It panics if i is out of range.
func (p Path) Component(i int) Component { return p.components[i] }

// Components returns a copy of the component sequence.
func (p Path) Components() []Component { return clone(p.components) }

// Head returns the first component, or false for an empty path.
func (p Path) Head() (Component, bool) {
	if len(p.components) == 0 {
		return Component{}, false
	}
	return p.components[0], true
}

// Tail returns the path without its first component.
// The tail of a path with fewer than two components is Self.
func (p Path) Tail() Path {
	if len(p.components) < 2 {
		return Self()
	}
	return Path{components: clone(p.components[1:]), relative: true}
}

// LastComponent returns the final component, or false for an empty path.
func (p Path) LastComponent() (Component, bool) {
	if len(p.components) == 0 {
		return Component{}, false
	}
	return p.components[len(p.components)-1], true
}

// ContainsNamedComponent reports whether any component is a name.
func (p Path) ContainsNamedComponent() bool {
	for _, c := range p.components {
		if c.IsName() {
			return true
		}
	}
	return false
}

// Append returns a new path with c added at the end.
func (p Path) Append(c Component) Path {
	comps := make([]Component, 0, len(p.components)+1)
	comps = append(comps, p.components...)
	comps = append(comps, c)
	return Path{components: comps, relative: p.relative}
}

// Join appends a relative path to p. Leading parent markers in rel remove
// trailing components of p, one per marker; the rest of rel is appended.
// The result keeps p's relativity.
func (p Path) Join(rel Path) Path {
	upward := 0
	for _, c := range rel.components {
		if !c.IsParent() {
			break
		}
		upward++
	}

	keep := len(p.components) - upward
	if keep < 0 {
		keep = 0
	}

	comps := make([]Component, 0, keep+len(rel.components)-upward)
	comps = append(comps, p.components[:keep]...)
	comps = append(comps, rel.components[upward:]...)
	return Path{components: comps, relative: p.relative}
}

// Equal reports whether both paths have the same relativity and components.
func (p Path) Equal(other Path) bool {
	if p.relative != other.relative || len(p.components) != len(other.components) {
		return false
	}
	for i, c := range p.components {
		if c != other.components[i] {
			return false
		}
	}
	return true
}

// ComponentsString renders the components without the relative prefix.
func (p Path) ComponentsString() string {
	parts := make([]string, len(p.components))
	for i, c := range p.components {
		parts[i] = c.String()
	}
	return strings.Join(parts, separator)
}

// String renders the path in the form accepted by Parse.
func (p Path) String() string {
	if p.relative {
		return separator + p.ComponentsString()
	}
	return p.ComponentsString()
}

func clone(components []Component) []Component {
	if len(components) == 0 {
		return nil
	}
	out := make([]Component, len(components))
	copy(out, components)
	return out
}
