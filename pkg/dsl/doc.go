/*
Package dsl provides a fluent builder for constructing inkling content trees in Go.

It is the programmatic counterpart of the YAML tree documents read by the
compiler, useful for tests, fixtures and generated stories.

Example usage:

	root, err := dsl.Container("").
		Nest(dsl.Container("A").Visits().
			Int(5).
			Nest(dsl.Container("B").String("hi"))).
		Named(dsl.Container("stitch").Divert("A.B.0")).
		Build()
	if err != nil {
		return err
	}

	res := root.ContentAtPath(path.MustParse("A.B.0"))

Mutation errors (duplicate names, malformed divert targets, unsupported
values) are collected along the way and returned together by Build.
*/
package dsl
