package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkling/internal/config"
	"github.com/aretw0/inkling/internal/logging"
	"github.com/aretw0/inkling/pkg/value"
)

const storyDoc = `
name: story
content:
  - name: knot
    visits: true
    content:
      - "hello"
      - divert: side
named:
  - name: side
    content: [5]
`

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "story.yaml")
	require.NoError(t, os.WriteFile(file, []byte(doc), 0o644))
	return file
}

func boolPtr(b bool) *bool { return &b }

func TestTree(t *testing.T) {
	file := writeDoc(t, storyDoc)

	var out bytes.Buffer
	err := Tree(&out, TreeOptions{File: file, Point: "knot.0", Color: boolPtr(false)}, logging.NewNop())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "<---")

	out.Reset()
	err = Tree(&out, TreeOptions{File: file, Point: "knot.9", Color: boolPtr(false)}, logging.NewNop())
	assert.ErrorContains(t, err, "closest: 'knot'")
}

func TestResolve(t *testing.T) {
	file := writeDoc(t, storyDoc)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"leaf", "knot.0", "knot.0\texact\tString\nhello\n"},
		{"container", "knot", "knot\texact\tcontainer(2)\n"},
		{"named only", "side.0", "side.0\texact\tInt\n5\n"},
		{"past the end", "knot.7", "knot\tapproximate\tcontainer(2)\n"},
		{"root", "", "<root>\texact\tcontainer(1)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, Resolve(&out, file, tt.path, logging.NewNop()))
			assert.Equal(t, tt.want, out.String())
		})
	}

	var out bytes.Buffer
	assert.Error(t, Resolve(&out, file, "a..b", logging.NewNop()))
	assert.Error(t, Resolve(&out, filepath.Join(t.TempDir(), "missing.yaml"), "knot", logging.NewNop()))
}

func TestLeaf(t *testing.T) {
	file := writeDoc(t, storyDoc)

	var out bytes.Buffer
	require.NoError(t, Leaf(&out, file, "", logging.NewNop()))
	assert.Equal(t, "knot.0\texact\tString\nhello\n", out.String())

	out.Reset()
	require.NoError(t, Leaf(&out, file, "side", logging.NewNop()))
	assert.Equal(t, "side.0\texact\tInt\n5\n", out.String())

	out.Reset()
	require.NoError(t, Leaf(&out, file, "ghost", logging.NewNop()))
	assert.Equal(t, "<root>\tapproximate\tcontainer(1)\n", out.String())
}

func TestCast(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		from, to string
		want     string
		wantErr  bool
	}{
		{"int to float", "4", "int", "float", "Float\t4\ttruthy=true\n", false},
		{"int to string", "7", "int", "string", "String\t7\ttruthy=true\n", false},
		{"zero to bool", "0", "int", "bool", "Bool\tfalse\ttruthy=false\n", false},
		{"unknown type", "1", "int", "colour", "", true},
		{"bad literal", "abc", "int", "float", "", true},
		{"incompatible", "1", "int", "divert", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Cast(&out, tt.raw, tt.from, tt.to)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}

	var out bytes.Buffer
	assert.ErrorIs(t, Cast(&out, "1", "int", "colour"), value.ErrUnknownType)
}

func TestValidate(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Validate(&out, writeDoc(t, storyDoc)))
	assert.Contains(t, out.String(), "Tree is valid!")

	broken := writeDoc(t, "content:\n  - divert: ghost\n  - divert: side.3\n")
	out.Reset()
	err := Validate(&out, broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 2 errors")
	assert.Contains(t, err.Error(), "ghost")
	assert.Empty(t, out.String())
}

func TestGraph(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Graph(&out, writeDoc(t, storyDoc)))
	got := out.String()
	assert.True(t, strings.HasPrefix(got, "graph TD\n"))
	assert.Contains(t, got, `n_knot["knot <br/> visits"]`)
	assert.Contains(t, got, `n_knot -. "side" .-> n_side`)
}

func TestInspect(t *testing.T) {
	file := writeDoc(t, storyDoc)

	t.Run("container", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Inspect(&out, InspectOptions{File: file, Path: "knot", Markdown: boolPtr(false)}, logging.NewNop()))
		report := out.String()
		assert.Contains(t, report, "# `knot`")
		assert.Contains(t, report, "| Name | `knot` |")
		assert.Contains(t, report, "| First leaf | `knot.0` |")
		assert.Contains(t, report, "visits=true")
	})

	t.Run("divert", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Inspect(&out, InspectOptions{File: file, Path: "knot.1", Markdown: boolPtr(false)}, logging.NewNop()))
		report := out.String()
		assert.Contains(t, report, "| Target | `side` |")
		assert.Contains(t, report, "| Lands on | `side` |")
		assert.Contains(t, report, "| Resolves exactly | `true` |")
	})

	t.Run("approximate", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Inspect(&out, InspectOptions{File: file, Path: "side.4", Markdown: boolPtr(false)}, logging.NewNop()))
		assert.Contains(t, out.String(), "**Approximate:**")
	})

	t.Run("rendered", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Inspect(&out, InspectOptions{File: file, Path: "side.0", Markdown: boolPtr(true)}, logging.NewNop()))
		assert.Contains(t, out.String(), "Truthy")
	})
}

func TestCreateLogger(t *testing.T) {
	logger, err := CreateLogger("")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = CreateLogger("loud")
	assert.Error(t, err)
}

func TestCounterFactory(t *testing.T) {
	counters, closeFn := counterFactory(config.Config{}, logging.NewNop())
	assert.Nil(t, counters, "memory counters are the server default")
	assert.NoError(t, closeFn())

	counters, closeFn = counterFactory(config.Config{RedisAddr: "127.0.0.1:0", RedisPrefix: "p:"}, logging.NewNop())
	require.NotNil(t, counters)
	assert.NotNil(t, counters("a"))
	assert.NoError(t, closeFn())
}
