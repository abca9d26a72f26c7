package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/path"
	"github.com/aretw0/inkling/pkg/value"
)

func TestBuilder_Scenario(t *testing.T) {
	// 1. Build the tree using DSL
	root, err := Container("").
		Nest(Container("A").Visits().
			Int(5).
			Nest(Container("B").String("hi"))).
		Build()
	require.NoError(t, err)

	// 2. Resolve through it
	res := root.ContentAtPath(path.MustParse("A.B.0"))
	require.False(t, res.Approximate)
	assert.Equal(t, "hi", res.Obj.(*value.StringValue).Value())

	a := root.ContentAtPath(path.MustParse("A")).Container()
	require.NotNil(t, a)
	assert.True(t, a.VisitsShouldBeCounted())
	assert.Equal(t, "A.B.0", res.Obj.Path().String())
}

func TestBuilder_AllValues(t *testing.T) {
	root, err := Container("root").
		Int(1).
		Float(2.5).
		Bool(true).
		String("s").
		Divert("knot.0").
		Pointer("score", 0).
		List(value.ListEntry{Item: value.ListItem{Origin: "c", Item: "red"}, Value: 1}).
		Value(int64(7)).
		Named(Container("knot").Turns().StartOnly().String("x")).
		Build()
	require.NoError(t, err)

	want := []value.ValueType{
		value.TypeInt, value.TypeFloat, value.TypeBool, value.TypeString,
		value.TypeDivertTarget, value.TypeVariablePointer, value.TypeList, value.TypeInt,
	}
	objs := root.Content()
	require.Len(t, objs, len(want))
	for i, w := range want {
		assert.Equal(t, w, objs[i].(value.Value).Type(), "item %d", i)
	}

	knot := root.NamedOnlyContent()["knot"].(*content.Container)
	assert.Equal(t, content.FlagTurns|content.FlagCountStartOnly, knot.CountFlags())
}

func TestBuilder_CollectsErrors(t *testing.T) {
	tests := []struct {
		name   string
		build  func() *ContainerBuilder
		wantIs error
	}{
		{
			name: "duplicate name",
			build: func() *ContainerBuilder {
				return Container("").Nest(Container("x")).Nest(Container("x"))
			},
			wantIs: content.ErrDuplicateName,
		},
		{
			name: "bad divert",
			build: func() *ContainerBuilder {
				return Container("").Divert("a..b")
			},
			wantIs: path.ErrInvalidPath,
		},
		{
			name: "anonymous named-only",
			build: func() *ContainerBuilder {
				return Container("").Named(Container(""))
			},
			wantIs: content.ErrInvalidName,
		},
		{
			name: "name that is not a path component",
			build: func() *ContainerBuilder {
				return Container("").Nest(Container("a.b"))
			},
			wantIs: content.ErrInvalidName,
		},
		{
			name: "error in nested child",
			build: func() *ContainerBuilder {
				return Container("").Nest(Container("k").Divert("a..b"))
			},
			wantIs: path.ErrInvalidPath,
		},
		{
			name: "unsupported value",
			build: func() *ContainerBuilder {
				return Container("").Value(struct{}{})
			},
		},
		{
			name: "nil child",
			build: func() *ContainerBuilder {
				return Container("").Nest(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.build().Build()
			require.Error(t, err)
			assert.Nil(t, c)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		Container("").Divert("..").MustBuild()
	})
	assert.NotPanics(t, func() {
		Container("ok").Int(1).MustBuild()
	})
}
