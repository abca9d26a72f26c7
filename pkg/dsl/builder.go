package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/inkling/pkg/content"
)

// ContainerBuilder manages the construction of a single container and,
// through Nest and Named, of the subtree below it.
type ContainerBuilder struct {
	c    *content.Container
	errs []error
}

// Container starts a new container. An empty name makes it anonymous; an
// invalid one is reported by Build.
func Container(name string) *ContainerBuilder {
	b := &ContainerBuilder{c: content.NewContainer("")}
	if err := b.c.SetName(name); err != nil {
		b.fail(err)
	}
	return b
}

// Nest appends child as positional content. A named child is also
// reachable by name.
func (b *ContainerBuilder) Nest(child *ContainerBuilder) *ContainerBuilder {
	if child == nil {
		b.fail(fmt.Errorf("nest: nil child builder"))
		return b
	}
	b.errs = append(b.errs, child.errs...)
	child.errs = nil
	b.add(child.c)
	return b
}

// Named adds child as named-only content: addressable by name but not part
// of the positional sequence.
func (b *ContainerBuilder) Named(child *ContainerBuilder) *ContainerBuilder {
	if child == nil {
		b.fail(fmt.Errorf("named: nil child builder"))
		return b
	}
	b.errs = append(b.errs, child.errs...)
	child.errs = nil
	if err := b.c.AddToNamedContentOnly(child.c); err != nil {
		b.fail(err)
	}
	return b
}

// Visits enables visit counting.
func (b *ContainerBuilder) Visits() *ContainerBuilder {
	b.c.SetVisitsShouldBeCounted(true)
	return b
}

// Turns enables turn index tracking.
func (b *ContainerBuilder) Turns() *ContainerBuilder {
	b.c.SetTurnIndexShouldBeCounted(true)
	return b
}

// StartOnly restricts counting to entries at the container's start.
func (b *ContainerBuilder) StartOnly() *ContainerBuilder {
	b.c.SetCountingAtStartOnly(true)
	return b
}

// Build returns the container, or every error recorded while building it.
func (b *ContainerBuilder) Build() (*content.Container, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("failed to build container %q: %w", b.c.Name(), errors.Join(b.errs...))
	}
	return b.c, nil
}

// MustBuild is like Build but panics on error. Intended for tests and
// package-level fixtures.
func (b *ContainerBuilder) MustBuild() *content.Container {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

func (b *ContainerBuilder) add(obj content.Object) {
	if err := b.c.AddContent(obj); err != nil {
		b.fail(err)
	}
}

func (b *ContainerBuilder) fail(err error) {
	b.errs = append(b.errs, err)
}
