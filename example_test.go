package inkling_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/inkling"
	"github.com/aretw0/inkling/pkg/adapters/memory"
	"github.com/aretw0/inkling/pkg/dsl"
	"github.com/aretw0/inkling/pkg/path"
)

// ExampleStory_ContentAtPath shows exact and approximate lookups.
func ExampleStory_ContentAtPath() {
	root := dsl.Container("").
		Nest(dsl.Container("knot").String("hi").Int(3)).
		MustBuild()

	story, err := inkling.New(root)
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	for _, raw := range []string{"knot.1", "knot.5"} {
		res := story.ContentAtPath(ctx, path.MustParse(raw))
		fmt.Println(raw, "->", res.Obj.Path().String(), res.Approximate)
	}

	leaf, exact := story.LandingPoint(ctx, path.MustParse("knot"))
	fmt.Println("knot lands on", leaf.Path().String(), exact)

	// Output:
	// knot.1 -> knot.1 false
	// knot.5 -> knot true
	// knot lands on knot.0 true
}

// ExampleLoad compiles a story document from a loader and counts visits.
func ExampleLoad() {
	loader := memory.NewLoader(map[string]string{
		"demo": "content:\n  - name: a\n    visits: true\n    content: [1]\n",
	})

	ctx := context.Background()
	story, err := inkling.Load(ctx, loader, "demo")
	if err != nil {
		log.Fatal(err)
	}

	a := story.ContentAtPath(ctx, path.MustParse("a")).Container()
	for i := 0; i < 2; i++ {
		if err := story.Visit(ctx, a, true); err != nil {
			log.Fatal(err)
		}
	}
	n, _ := story.VisitCount(ctx, a)
	fmt.Println(story.Name(), n)

	// Output:
	// demo 2
}
