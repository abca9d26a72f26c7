package observability

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkling"
	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/dsl"
	"github.com/aretw0/inkling/pkg/path"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	root := dsl.Container("").
		Nest(dsl.Container("knot").Visits().String("hi")).
		MustBuild()
	story, err := inkling.New(root, inkling.WithName("demo"), inkling.WithHooks(m.Hooks()))
	require.NoError(t, err)

	ctx := context.Background()
	story.ContentAtPath(ctx, path.MustParse("knot.0"))
	story.ContentAtPath(ctx, path.MustParse("knot.9"))
	story.ContentAtPath(ctx, path.MustParse("nowhere"))

	knot := root.NamedContent()["knot"].(*content.Container)
	require.NoError(t, story.Visit(ctx, knot, true))
	require.NoError(t, story.Visit(ctx, knot, true))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("demo", "false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues("demo", "true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Visits.WithLabelValues("demo", "knot", "true")))

	expected := `
# HELP inkling_container_visit_count Latest visit count per container
# TYPE inkling_container_visit_count gauge
inkling_container_visit_count{container="knot",story="demo"} 2
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected), "inkling_container_visit_count")
	assert.NoError(t, err)
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}
