package graph_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aretw0/inkling/internal/presentation/graph"
	"github.com/aretw0/inkling/pkg/dsl"
)

func TestGenerateMermaid_Snapshot(t *testing.T) {
	root := dsl.Container("").
		Nest(dsl.Container("A").Visits().Int(1).Divert("B")).
		Named(dsl.Container("B").String("x").Divert("ghost")).
		MustBuild()

	want := `graph TD
    root(("root"))
    n_A["A <br/> visits"]
    n_B["B"]
    dead{{"dead divert"}}
    root --> n_A
    n_A -. "B" .-> n_B
    root -.-> n_B
    n_B -. "ghost" .-> dead
    classDef dead fill:#ffcdd2,stroke:#c62828,color:#000;
    class dead dead;
`
	if diff := cmp.Diff(want, graph.GenerateMermaid(root, nil)); diff != "" {
		t.Errorf("GenerateMermaid mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		build    *dsl.ContainerBuilder
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name:     "Named Root",
			build:    dsl.Container("story"),
			contains: []string{`root(("story"))`},
		},
		{
			name:     "Anonymous Child Shape",
			build:    dsl.Container("").Nest(dsl.Container("").Int(1)),
			contains: []string{`n_0("0")`, "root --> n_0"},
		},
		{
			name:     "Relative Divert",
			build:    dsl.Container("").Nest(dsl.Container("k").Turns().StartOnly().Divert(".^.0")),
			contains: []string{`n_k["k <br/> turns, start only"]`, `n_k -. ".^.0" .-> n_k`},
			excludes: []string{"dead"},
		},
		{
			name:    "Overlay",
			build:   dsl.Container("").Nest(dsl.Container("a")).Nest(dsl.Container("b")),
			overlay: &graph.GraphOverlay{VisitedPaths: []string{"a", "a", ""}, CurrentPath: "b"},
			contains: []string{
				"classDef visited",
				"class n_a visited;",
				"class root visited;",
				"class n_b current;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(tt.build.MustBuild(), tt.overlay)
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("expected output to contain %q\n%s", s, out)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out, s) {
					t.Errorf("expected output not to contain %q\n%s", s, out)
				}
			}
			if tt.overlay != nil && strings.Count(out, "class n_a visited;") != 1 {
				t.Errorf("visited paths should be deduplicated\n%s", out)
			}
		})
	}

	if got := graph.GenerateMermaid(nil, nil); got != "graph TD\n" {
		t.Errorf("nil root: got %q", got)
	}
}
