package path

import (
	"fmt"
	"strconv"
	"strings"
)

// Component is a single addressing step: an index, a name or the parent marker.
// Components are comparable with ==.
type Component struct {
	index int
	name  string
}

// Index creates an index component. It panics on a negative index.
func Index(i int) Component {
	if i < 0 {
		panic("path: negative component index " + strconv.Itoa(i))
	}
	return Component{index: i}
}

// Name creates a name component. "^" yields the parent marker.
// It panics on names IsValidName rejects, since their string form would
// parse back into different components.
func Name(name string) Component {
	if name == parentID {
		return Parent()
	}
	if name == "" {
		panic("path: empty component name")
	}
	if !IsValidName(name) {
		panic(fmt.Sprintf("path: invalid component name %q", name))
	}
	return Component{index: -1, name: name}
}

// IsValidName reports whether s can name a child: non-empty, free of the
// separator, not made only of digits and not the parent marker.
func IsValidName(s string) bool {
	return s != "" && s != parentID && !strings.Contains(s, separator) && !isDigits(s)
}

// Parent returns the parent marker component.
func Parent() Component {
	return Component{index: -1, name: parentID}
}

func parseComponent(s string) (Component, error) {
	if isDigits(s) {
		i, err := strconv.Atoi(s)
		if err != nil {
			return Component{}, fmt.Errorf("%w: index %q: %v", ErrInvalidPath, s, err)
		}
		return Index(i), nil
	}
	return Name(s), nil
}

// IsIndex reports whether the component addresses a position.
func (c Component) IsIndex() bool { return c.index >= 0 }

// IsParent reports whether the component is the parent marker.
func (c Component) IsParent() bool { return c.name == parentID }

// IsName reports whether the component addresses a named child.
func (c Component) IsName() bool { return c.index < 0 && c.name != "" && c.name != parentID }

// Index returns the positional index, or -1 for non-index components.
func (c Component) Index() int {
	if c.IsIndex() {
		return c.index
	}
	return -1
}

// Name returns the name, or "" for index components. The parent marker's name is "^".
func (c Component) Name() string { return c.name }

func (c Component) String() string {
	if c.IsIndex() {
		return strconv.Itoa(c.index)
	}
	return c.name
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
