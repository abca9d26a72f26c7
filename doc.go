/*
Package inkling is the content-addressing and value-typing core of an interactive-fiction runtime.

A story is a tree of containers holding typed values. Every node can be reached by a
dotted path ("knot.stitch.0", ".^.2"), containers remember which of their children are
named, and values (bool, int, float, string, list, divert target, variable pointer) cast
between each other under fixed rules.

# Packages

  - pkg/path: immutable paths and their string form.
  - pkg/content: the Object/Container tree, path resolution and first-leaf lookup.
  - pkg/value: typed values, truthiness and casting.
  - pkg/dsl: a fluent builder for trees written in Go.
  - pkg/ports and pkg/adapters: story loaders and counter stores (memory, file, redis),
    plus HTTP and MCP front ends.

# Usage

Load a tree document and resolve paths through a Story:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/inkling"
		"github.com/aretw0/inkling/pkg/adapters/file"
		"github.com/aretw0/inkling/pkg/path"
	)

	func main() {
		ctx := context.Background()

		story, err := inkling.Load(ctx, file.New("./stories"), "intro")
		if err != nil {
			log.Fatal(err)
		}

		// Where does a divert to "knot" actually land?
		obj, exact := story.LandingPoint(ctx, path.MustParse("knot"))
		fmt.Println(obj.Path(), exact)
	}

Visit counting follows each container's count flags: call Visit when execution enters a
container and read the results with VisitCount and TurnsSince.
*/
package inkling
