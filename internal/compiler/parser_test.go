package compiler

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/path"
	"github.com/aretw0/inkling/pkg/value"
)

const scenarioDoc = `
content:
  - name: A
    visits: true
    content:
      - 5
      - name: B
        content: ["hi"]
`

func TestParse_Scenario(t *testing.T) {
	root, err := Parse([]byte(scenarioDoc))
	require.NoError(t, err)

	res := root.ContentAtPath(path.MustParse("A.B.0"))
	require.False(t, res.Approximate)
	s, ok := res.Obj.(*value.StringValue)
	require.True(t, ok, "got %T", res.Obj)
	assert.Equal(t, "hi", s.Value())

	a := root.ContentAtPath(path.MustParse("A")).Container()
	require.NotNil(t, a)
	assert.True(t, a.VisitsShouldBeCounted())
	assert.Equal(t, content.FlagVisits, a.CountFlags())
}

func TestParse_AllValueKinds(t *testing.T) {
	doc := `
name: root
flags: 3
content:
  - true
  - 7
  - 2.5
  - "text"
  - "42"
  - divert: knot.0
  - var: score
    ci: 2
  - var: anon
  - list: {colours.red: 1, colours.blue: 2, bare: 0}
named:
  - name: knot
    content: [1]
`
	root, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "root", root.Name())
	assert.Equal(t, 3, root.CountFlags())

	objs := root.Content()
	require.Len(t, objs, 9)

	wantTypes := []value.ValueType{
		value.TypeBool, value.TypeInt, value.TypeFloat, value.TypeString, value.TypeString,
		value.TypeDivertTarget, value.TypeVariablePointer, value.TypeVariablePointer, value.TypeList,
	}
	for i, want := range wantTypes {
		v, ok := objs[i].(value.Value)
		require.True(t, ok, "item %d is %T", i, objs[i])
		assert.Equal(t, want, v.Type(), "item %d", i)
	}

	assert.Equal(t, "42", objs[4].(*value.StringValue).Value())
	assert.Equal(t, "knot.0", objs[5].(*value.DivertTargetValue).Value().String())
	assert.Equal(t, value.VariablePointer{Name: "score", ContextIndex: 2}, objs[6].(*value.VariablePointerValue).Value())
	assert.Equal(t, -1, objs[7].(*value.VariablePointerValue).Value().ContextIndex)

	l := objs[8].(*value.ListValue).Value()
	assert.Equal(t, 3, l.Len())
	assert.True(t, l.Contains(value.ListItem{Origin: "colours", Item: "blue"}))
	assert.True(t, l.Contains(value.ListItem{Item: "bare"}))

	named := root.NamedOnlyContent()
	require.Contains(t, named, "knot")

	res := root.ContentAtPath(path.MustParse("knot.0"))
	assert.False(t, res.Approximate)
}

func TestParse_JSON(t *testing.T) {
	root, err := Parse([]byte(`{"content": [{"name": "A", "content": [1, 2.5, "x"]}]}`))
	require.NoError(t, err)
	res := root.ContentAtPath(path.MustParse("A.1"))
	require.False(t, res.Approximate)
	assert.Equal(t, value.TypeFloat, res.Obj.(value.Value).Type())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
		wantIs   error
	}{
		{"empty", "", "", ErrEmptyDocument},
		{"not a mapping", "[1, 2]", "", nil},
		{"unknown key", "content: []\ncolour: red", "", nil},
		{"duplicate name", "content:\n  - name: x\n  - name: x", "content[1]", content.ErrDuplicateName},
		{"null entry", "content:\n  - 1\n  - null", "content[1]", nil},
		{"nested sequence", "content:\n  - [1, 2]", "content[0]", nil},
		{"bad divert", "content:\n  - name: k\n    content:\n      - divert: a..b", "content[0].content[0]", path.ErrInvalidPath},
		{"divert with extra key", "content:\n  - divert: a\n    name: b", "content[0]", nil},
		{"anonymous named", "named:\n  - content: [1]", "named[0]", content.ErrInvalidName},
		{"dotted name", "content:\n  - name: a.b", "content[0]", content.ErrInvalidName},
		{"numeric name", "content:\n  - name: '12'", "content[0]", content.ErrInvalidName},
		{"numeric named-only name", "named:\n  - name: '7'", "named[0]", content.ErrInvalidName},
		{"parent marker root name", "name: '^'\ncontent: [1]", "", content.ErrInvalidName},
		{"pointer without name", "content:\n  - var: ''", "content[0]", nil},
		{"list without item", "content:\n  - list: {'colours.': 1}", "content[0]", nil},
		{"malformed yaml", "content: [", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)

			var docErr *DocumentError
			require.True(t, errors.As(err, &docErr), "got %T: %v", err, err)
			assert.Equal(t, tt.wantPath, docErr.Path)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	doc := `
name: story
content:
  - "intro\nline"
  - 5.0
  - -3
  - false
  - "7"
  - name: knot
    visits: true
    turns: true
    start_only: true
    content:
      - divert: .^.1
      - var: v
        ci: 0
      - list: {c.a: 1, c.b: 2}
named:
  - name: zeta
  - name: alpha
    content: [1.25]
`
	first, err := Parse([]byte(doc))
	require.NoError(t, err)

	encoded, err := Encode(first)
	require.NoError(t, err)

	second, err := Parse(encoded)
	require.NoError(t, err, "encoded document:\n%s", encoded)

	if diff := cmp.Diff(first.BuildStringOfHierarchy(), second.BuildStringOfHierarchy()); diff != "" {
		t.Errorf("round trip changed the tree (-first +second):\n%s", diff)
	}

	f := second.ContentAtPath(path.MustParse("1")).Obj.(value.Value)
	assert.Equal(t, value.TypeFloat, f.Type(), "whole floats must stay floats")

	s := second.ContentAtPath(path.MustParse("4")).Obj.(value.Value)
	assert.Equal(t, value.TypeString, s.Type(), "numeric-looking strings must stay strings")

	knot := second.ContentAtPath(path.MustParse("knot")).Container()
	require.NotNil(t, knot)
	assert.Equal(t, 7, knot.CountFlags())
}

func TestEncode_Nil(t *testing.T) {
	_, err := Encode(nil)
	assert.Error(t, err)
}
