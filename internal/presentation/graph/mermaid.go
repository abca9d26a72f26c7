package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/value"
)

const rootID = "root"

// GraphOverlay contains dynamic state data to visualize on the graph.
// Entries are absolute container paths, "" being the root.
type GraphOverlay struct {
	VisitedPaths []string
	CurrentPath  string
}

// GenerateMermaid produces a Mermaid flowchart of the containers under root.
// It applies semantic styling:
// - Root: ((Circle))
// - Named container: [Rectangle]
// - Anonymous container: (Rounded)
// Positional children use solid edges, named-only children dotted ones and
// divert targets a labelled dotted edge. Diverts that do not resolve point at
// a shared "dead" node.
func GenerateMermaid(root *content.Container, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if root == nil {
		return sb.String()
	}

	var edges []string
	hasDead := false

	var walk func(c *content.Container)
	walk = func(c *content.Container) {
		id := nodeID(c)
		sb.WriteString(fmt.Sprintf("    %s%s\n", id, shape(c)))

		for _, obj := range c.Content() {
			switch o := obj.(type) {
			case *content.Container:
				edges = append(edges, fmt.Sprintf("    %s --> %s", id, nodeID(o)))
				walk(o)
			case *value.DivertTargetValue:
				res := content.ResolvePath(o, o.Value())
				if res.Approximate {
					hasDead = true
					edges = append(edges, fmt.Sprintf("    %s -. \"%s\" .-> dead", id, o.Value()))
					continue
				}
				edges = append(edges, fmt.Sprintf("    %s -. \"%s\" .-> %s", id, o.Value(), nodeID(owner(res.Obj))))
			}
		}

		named := c.NamedOnlyContent()
		names := make([]string, 0, len(named))
		for name := range named {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if child, ok := named[name].(*content.Container); ok {
				edges = append(edges, fmt.Sprintf("    %s -.-> %s", id, nodeID(child)))
				walk(child)
			}
		}
	}
	walk(root)

	if hasDead {
		sb.WriteString("    dead{{\"dead divert\"}}\n")
	}
	for _, e := range edges {
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	if hasDead {
		sb.WriteString("    classDef dead fill:#ffcdd2,stroke:#c62828,color:#000;\n")
		sb.WriteString("    class dead dead;\n")
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, p := range overlay.VisitedPaths {
			safeID := pathID(p)
			if !visitedSet[safeID] {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentPath != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", pathID(overlay.CurrentPath)))
		}
	}

	return sb.String()
}

// owner returns obj when it is a container, otherwise its parent.
func owner(obj content.Object) *content.Container {
	if c, ok := obj.(*content.Container); ok {
		return c
	}
	return obj.Parent()
}

func shape(c *content.Container) string {
	label := c.Name()
	if label == "" {
		label = c.Path().String()
	}
	if flags := flagLabel(c); flags != "" {
		label += " <br/> " + flags
	}

	switch {
	case c.Parent() == nil:
		if c.Name() == "" {
			label = rootID
		}
		return fmt.Sprintf("((\"%s\"))", label)
	case c.Name() != "":
		return fmt.Sprintf("[\"%s\"]", label)
	default:
		return fmt.Sprintf("(\"%s\")", label)
	}
}

func flagLabel(c *content.Container) string {
	var parts []string
	if c.VisitsShouldBeCounted() {
		parts = append(parts, "visits")
	}
	if c.TurnIndexShouldBeCounted() {
		parts = append(parts, "turns")
	}
	if c.CountingAtStartOnly() {
		parts = append(parts, "start only")
	}
	return strings.Join(parts, ", ")
}

func nodeID(c *content.Container) string {
	if c == nil {
		return rootID
	}
	return pathID(c.Path().String())
}

func pathID(p string) string {
	if p == "" {
		return rootID
	}
	return "n_" + sanitizeMermaidID(p)
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "^", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
