package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/inkling/internal/presentation/tui"
	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/path"
	"github.com/aretw0/inkling/pkg/value"
)

// InspectOptions configures the inspect command.
type InspectOptions struct {
	File string
	Path string
	// Markdown forces rendering on or off; nil detects a terminal.
	Markdown *bool
}

// Inspect prints a markdown report about the object at a path.
func Inspect(w io.Writer, opts InspectOptions, logger *slog.Logger) error {
	story, err := loadStory(opts.File, logger)
	if err != nil {
		return err
	}
	p, err := path.Parse(opts.Path)
	if err != nil {
		return err
	}

	res := story.ContentAtPath(context.Background(), p)
	report := inspectReport(story.Name(), p, res)

	render := isTerminal(w)
	if opts.Markdown != nil {
		render = *opts.Markdown
	}
	if render {
		renderer, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		if report, err = renderer(report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}
	_, err = io.WriteString(w, report)
	return err
}

func inspectReport(story string, p path.Path, res content.SearchResult) string {
	var sb strings.Builder
	obj := res.Obj

	fmt.Fprintf(&sb, "# `%s`\n\n", pathLabel(obj.Path()))
	fmt.Fprintf(&sb, "Story: `%s`\n\n", story)
	if res.Approximate {
		fmt.Fprintf(&sb, "> **Approximate:** `%s` could not be followed to the end.\n\n", p)
	}

	sb.WriteString("| Property | Value |\n|---|---|\n")
	row := func(k, v string) { fmt.Fprintf(&sb, "| %s | `%s` |\n", k, strings.ReplaceAll(v, "|", "\\|")) }

	row("Kind", kindOf(obj))
	if parent := obj.Parent(); parent != nil {
		row("Parent", pathLabel(parent.Path()))
	}

	switch o := obj.(type) {
	case *content.Container:
		if o.Name() != "" {
			row("Name", o.Name())
		}
		row("Count flags", fmt.Sprintf("%d (visits=%t turns=%t start_only=%t)",
			o.CountFlags(), o.VisitsShouldBeCounted(), o.TurnIndexShouldBeCounted(), o.CountingAtStartOnly()))
		row("First leaf", pathLabel(o.PathToFirstLeafContent()))
		if named := o.NamedOnlyContent(); len(named) > 0 {
			names := make([]string, 0, len(named))
			for name := range named {
				names = append(names, name)
			}
			row("Named only", strings.Join(sortStrings(names), ", "))
		}
	case *value.DivertTargetValue:
		target := o.Value()
		row("Target", target.String())
		row("Compact target", content.CompactPathString(o, target))
		dest := content.ResolvePath(o, target)
		row("Lands on", pathLabel(dest.Obj.Path()))
		row("Resolves exactly", fmt.Sprintf("%t", !dest.Approximate))
	case value.Value:
		row("Value", o.String())
		row("Truthy", fmt.Sprintf("%t", o.IsTruthy()))
	}

	return sb.String()
}
