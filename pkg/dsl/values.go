package dsl

import (
	"fmt"

	"github.com/aretw0/inkling/pkg/path"
	"github.com/aretw0/inkling/pkg/value"
)

// Int appends an integer value.
func (b *ContainerBuilder) Int(v int) *ContainerBuilder {
	b.add(value.NewInt(v))
	return b
}

// Float appends a float value.
func (b *ContainerBuilder) Float(v float64) *ContainerBuilder {
	b.add(value.NewFloat(v))
	return b
}

// Bool appends a bool value.
func (b *ContainerBuilder) Bool(v bool) *ContainerBuilder {
	b.add(value.NewBool(v))
	return b
}

// String appends a string value.
func (b *ContainerBuilder) String(v string) *ContainerBuilder {
	b.add(value.NewString(v))
	return b
}

// Divert appends a divert target. The target is parsed with path.Parse;
// a malformed target is reported by Build.
func (b *ContainerBuilder) Divert(target string) *ContainerBuilder {
	p, err := path.Parse(target)
	if err != nil {
		b.fail(fmt.Errorf("divert %q: %w", target, err))
		return b
	}
	b.add(value.NewDivertTarget(p))
	return b
}

// Pointer appends a variable pointer. Use -1 as contextIndex when the
// variable's scope is not yet known.
func (b *ContainerBuilder) Pointer(name string, contextIndex int) *ContainerBuilder {
	b.add(value.NewVariablePointer(name, contextIndex))
	return b
}

// List appends a list value holding the given entries.
func (b *ContainerBuilder) List(entries ...value.ListEntry) *ContainerBuilder {
	b.add(value.NewListValue(value.NewList(entries...)))
	return b
}

// Value appends any supported raw Go value, converted with value.Create.
func (b *ContainerBuilder) Value(raw any) *ContainerBuilder {
	v, ok := value.Create(raw)
	if !ok {
		b.fail(fmt.Errorf("value: unsupported %T", raw))
		return b
	}
	b.add(v)
	return b
}
