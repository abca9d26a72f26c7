package content

import (
	"fmt"
	"strings"
)

const (
	hierarchyIndent = "    "
	pointerMarker   = "  <---"
)

// BuildStringOfHierarchy renders the container and its descendants for debugging.
func (c *Container) BuildStringOfHierarchy() string {
	return c.BuildStringOfHierarchyPointing(nil)
}

// BuildStringOfHierarchyPointing renders the hierarchy and marks pointed,
// if it appears in the tree, with "<---".
//
// Named-only children are listed after the positional ones under a
// "-- named: --" header, ordered by name.
func (c *Container) BuildStringOfHierarchyPointing(pointed Object) string {
	return hierarchyString(c, 0, pointed)
}

func hierarchyString(c *Container, depth int, pointed Object) string {
	indent := strings.Repeat(hierarchyIndent, depth)
	childIndent := indent + hierarchyIndent

	var sb strings.Builder
	sb.WriteString(indent)
	sb.WriteString("[")
	if c.name != "" {
		fmt.Fprintf(&sb, " (%s)", c.name)
	}
	if isPointed(c, pointed) {
		sb.WriteString(pointerMarker)
	}
	sb.WriteString("\n")

	for i, obj := range c.content {
		child, isContainer := obj.(*Container)
		if isContainer {
			sb.WriteString(hierarchyString(child, depth+1, pointed))
		} else {
			sb.WriteString(childIndent)
			sb.WriteString(leafString(obj))
		}
		if i != len(c.content)-1 {
			sb.WriteString(",")
		}
		if !isContainer && isPointed(obj, pointed) {
			sb.WriteString(pointerMarker)
		}
		sb.WriteString("\n")
	}

	if named := c.NamedOnlyContent(); len(named) > 0 {
		sb.WriteString(childIndent)
		sb.WriteString("-- named: --\n")
		for _, name := range sortedKeys(named) {
			obj := named[name]
			if child, ok := obj.(*Container); ok {
				sb.WriteString(hierarchyString(child, depth+1, pointed))
			} else {
				sb.WriteString(childIndent)
				sb.WriteString(leafString(obj))
				if isPointed(obj, pointed) {
					sb.WriteString(pointerMarker)
				}
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString(indent)
	sb.WriteString("]")
	return sb.String()
}

func leafString(obj Object) string {
	switch o := obj.(type) {
	case TextContent:
		return `"` + strings.ReplaceAll(o.Text(), "\n", `\n`) + `"`
	case fmt.Stringer:
		return o.String()
	default:
		return fmt.Sprintf("%T", obj)
	}
}

func isPointed(obj, pointed Object) bool {
	return pointed != nil && obj == pointed
}
