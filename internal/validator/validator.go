package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/value"
)

// Issue kinds reported by Check.
const (
	KindParentMismatch = "parent_mismatch"
	KindUnregistered   = "unregistered_name"
	KindForeignNamed   = "foreign_named_entry"
	KindDeadDivert     = "dead_divert"
)

// Issue is a single problem found in a tree.
type Issue struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s at '%s': %s", i.Kind, i.Path, i.Message)
}

// ValidateTree checks structural consistency and divert targets of the tree
// under root. All problems are reported in a single error.
func ValidateTree(root *content.Container) error {
	issues := Check(root)
	if len(issues) == 0 {
		return nil
	}

	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(issues), strings.Join(lines, "\n- "))
}

type queued struct {
	c     *content.Container
	label string
}

// Check crawls the tree breadth-first and returns every issue found.
func Check(root *content.Container) []Issue {
	if root == nil {
		return []Issue{{Kind: KindParentMismatch, Message: "nil root"}}
	}

	var issues []Issue
	visited := make(map[*content.Container]bool)
	queue := []queued{{c: root, label: ""}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current.c] {
			continue
		}
		visited[current.c] = true

		named := current.c.NamedContent()

		// Positional children
		for i, obj := range current.c.Content() {
			label := childLabel(current.label, obj, i)

			if obj.Parent() != current.c {
				issues = append(issues, Issue{Path: label, Kind: KindParentMismatch, Message: "child does not point back to its container"})
			}
			if n, ok := obj.(content.Nameable); ok && content.HasValidName(n) {
				if named[n.Name()] != n {
					issues = append(issues, Issue{Path: label, Kind: KindUnregistered, Message: fmt.Sprintf("name %q is not registered in its container", n.Name())})
				}
			}
			if d, ok := obj.(*value.DivertTargetValue); ok {
				res := content.ResolvePath(d, d.Value())
				if res.Approximate {
					issues = append(issues, Issue{Path: label, Kind: KindDeadDivert, Message: fmt.Sprintf("divert target '%s' does not resolve", d.Value())})
				}
			}
			if child, ok := obj.(*content.Container); ok {
				queue = append(queue, queued{c: child, label: label})
			}
		}

		// Named entries, including named-only ones
		names := make([]string, 0, len(named))
		for name := range named {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			obj := named[name]
			label := join(current.label, name)
			if obj.Parent() != current.c {
				issues = append(issues, Issue{Path: label, Kind: KindForeignNamed, Message: "named entry belongs to another container"})
				continue
			}
			if child, ok := obj.(*content.Container); ok {
				queue = append(queue, queued{c: child, label: label})
			}
		}
	}

	return issues
}

func childLabel(parent string, obj content.Object, index int) string {
	if n, ok := obj.(content.Nameable); ok && content.HasValidName(n) {
		return join(parent, n.Name())
	}
	return join(parent, fmt.Sprintf("%d", index))
}

func join(parent, step string) string {
	if parent == "" {
		return step
	}
	return parent + "." + step
}
