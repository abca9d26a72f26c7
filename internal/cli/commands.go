package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/inkling/internal/presentation/graph"
	"github.com/aretw0/inkling/internal/presentation/tui"
	"github.com/aretw0/inkling/internal/validator"
	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/path"
	"github.com/aretw0/inkling/pkg/value"
)

// TreeOptions configures the tree command.
type TreeOptions struct {
	File string
	// Point marks the object at this path in the dump.
	Point string
	// Color forces highlighting on or off; nil detects a terminal.
	Color *bool
}

// Tree prints the hierarchy of a tree document.
func Tree(w io.Writer, opts TreeOptions, logger *slog.Logger) error {
	story, err := loadStory(opts.File, logger)
	if err != nil {
		return err
	}

	var pointed content.Object
	if opts.Point != "" {
		p, err := path.Parse(opts.Point)
		if err != nil {
			return err
		}
		res := story.ContentAtPath(context.Background(), p)
		if res.Approximate {
			return fmt.Errorf("no object at '%s' (closest: '%s')", p, res.Obj.Path())
		}
		pointed = res.Obj
	}

	dump := story.Hierarchy(pointed)
	color := isTerminal(w)
	if opts.Color != nil {
		color = *opts.Color
	}
	if color {
		dump = tui.Highlight(dump, termenv.EnvColorProfile())
	}
	_, err = fmt.Fprintln(w, dump)
	return err
}

// Resolve prints where a path leads in a tree document.
func Resolve(w io.Writer, file, raw string, logger *slog.Logger) error {
	story, err := loadStory(file, logger)
	if err != nil {
		return err
	}
	p, err := path.Parse(raw)
	if err != nil {
		return err
	}

	res := story.ContentAtPath(context.Background(), p)
	printObject(w, res.Obj, !res.Approximate)
	return nil
}

// Leaf prints where a divert to raw would land. An empty path means the root.
func Leaf(w io.Writer, file, raw string, logger *slog.Logger) error {
	story, err := loadStory(file, logger)
	if err != nil {
		return err
	}
	p, err := path.Parse(raw)
	if err != nil {
		return err
	}

	obj, exact := story.LandingPoint(context.Background(), p)
	printObject(w, obj, exact)
	return nil
}

// Cast converts a literal of type from to type to and prints the result.
func Cast(w io.Writer, raw, from, to string) error {
	fromType, err := value.ParseType(from)
	if err != nil {
		return err
	}
	toType, err := value.ParseType(to)
	if err != nil {
		return err
	}

	v, err := value.Parse(raw, fromType)
	if err != nil {
		return err
	}
	out, err := v.Cast(toType)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\t%s\ttruthy=%t\n", out.Type(), out, out.IsTruthy())
	return nil
}

// Validate checks a tree document and lists every problem found.
func Validate(w io.Writer, file string) error {
	root, err := loadTree(file)
	if err != nil {
		return err
	}
	if err := validator.ValidateTree(root); err != nil {
		return err
	}
	fmt.Fprintln(w, "Tree is valid! ✅")
	return nil
}

// Graph prints a Mermaid diagram of a tree document.
func Graph(w io.Writer, file string) error {
	root, err := loadTree(file)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(root, nil))
	return err
}

func printObject(w io.Writer, obj content.Object, exact bool) {
	status := "exact"
	if !exact {
		status = "approximate"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n", pathLabel(obj.Path()), status, kindOf(obj))
	if v, ok := obj.(value.Value); ok {
		fmt.Fprintln(w, strings.TrimRight(v.String(), "\n"))
	}
}

func kindOf(obj content.Object) string {
	switch o := obj.(type) {
	case *content.Container:
		return fmt.Sprintf("container(%d)", o.Len())
	case value.Value:
		return o.Type().String()
	default:
		return fmt.Sprintf("%T", obj)
	}
}

func pathLabel(p path.Path) string {
	if p.Len() == 0 {
		return "<root>"
	}
	return p.String()
}
