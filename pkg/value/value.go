package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/path"
)

// Value is a typed piece of data that can live in the content tree.
// The set of implementations is closed to this package.
type Value interface {
	content.Object

	Type() ValueType
	// IsTruthy is the value's interpretation in a condition.
	IsTruthy() bool
	// Cast converts to t. Failures wrap ErrInvalidCast.
	Cast(t ValueType) (Value, error)
	// Payload returns the wrapped Go value.
	Payload() any
	String() string

	isValue()
}

type BoolValue struct {
	content.Base
	v bool
}

func NewBool(v bool) *BoolValue { return &BoolValue{v: v} }

func (b *BoolValue) Value() bool { return b.v }
func (b *BoolValue) Type() ValueType { return TypeBool }
func (b *BoolValue) IsTruthy() bool { return b.v }
func (b *BoolValue) Payload() any { return b.v }
func (b *BoolValue) String() string { return strconv.FormatBool(b.v) }
func (b *BoolValue) isValue() {}

type IntValue struct {
	content.Base
	v int
}

func NewInt(v int) *IntValue { return &IntValue{v: v} }

func (i *IntValue) Value() int { return i.v }
func (i *IntValue) Type() ValueType { return TypeInt }
func (i *IntValue) IsTruthy() bool { return i.v != 0 }
func (i *IntValue) Payload() any { return i.v }
func (i *IntValue) String() string { return strconv.Itoa(i.v) }
func (i *IntValue) isValue() {}

type FloatValue struct {
	content.Base
	v float64
}

func NewFloat(v float64) *FloatValue { return &FloatValue{v: v} }

func (f *FloatValue) Value() float64 { return f.v }
func (f *FloatValue) Type() ValueType { return TypeFloat }
func (f *FloatValue) IsTruthy() bool { return f.v != 0 }
func (f *FloatValue) Payload() any { return f.v }
func (f *FloatValue) String() string { return formatFloat(f.v) }
func (f *FloatValue) isValue() {}

// StringValue holds story text. It is rendered quoted in hierarchy dumps.
type StringValue struct {
	content.Base
	v string
}

func NewString(v string) *StringValue { return &StringValue{v: v} }

func (s *StringValue) Value() string { return s.v }
func (s *StringValue) Text() string { return s.v }
func (s *StringValue) Type() ValueType { return TypeString }
func (s *StringValue) IsTruthy() bool { return len(s.v) > 0 }
func (s *StringValue) Payload() any { return s.v }
func (s *StringValue) String() string { return s.v }
func (s *StringValue) isValue() {}

// IsNewline reports whether the text is exactly a line break.
func (s *StringValue) IsNewline() bool { return s.v == "\n" }

// IsInlineWhitespace reports whether the text is only spaces and tabs.
func (s *StringValue) IsInlineWhitespace() bool {
	return strings.Trim(s.v, " \t") == ""
}

// IsNonWhitespace reports whether the text has visible content.
func (s *StringValue) IsNonWhitespace() bool {
	return !s.IsNewline() && !s.IsInlineWhitespace()
}

type ListValue struct {
	content.Base
	v *List
}

// NewListValue wraps l. A nil list is treated as empty.
func NewListValue(l *List) *ListValue {
	if l == nil {
		l = NewList()
	}
	return &ListValue{v: l}
}

func (l *ListValue) Value() *List { return l.v }
func (l *ListValue) Type() ValueType { return TypeList }
func (l *ListValue) IsTruthy() bool { return l.v.Len() > 0 }
func (l *ListValue) Payload() any { return l.v }
func (l *ListValue) String() string { return l.v.String() }
func (l *ListValue) isValue() {}

// DivertTargetValue holds a path to divert to. It is always truthy.
type DivertTargetValue struct {
	content.Base
	target path.Path
}

func NewDivertTarget(target path.Path) *DivertTargetValue {
	return &DivertTargetValue{target: target}
}

func (d *DivertTargetValue) Value() path.Path { return d.target }
func (d *DivertTargetValue) Type() ValueType { return TypeDivertTarget }
func (d *DivertTargetValue) IsTruthy() bool { return true }
func (d *DivertTargetValue) Payload() any { return d.target }
func (d *DivertTargetValue) isValue() {}

func (d *DivertTargetValue) String() string {
	return fmt.Sprintf("DivertTargetValue(%s)", d.target)
}

// VariablePointer names a variable in a given call stack context.
// ContextIndex -1 means the context is not yet known.
type VariablePointer struct {
	Name         string
	ContextIndex int
}

type VariablePointerValue struct {
	content.Base
	v VariablePointer
}

func NewVariablePointer(name string, contextIndex int) *VariablePointerValue {
	return &VariablePointerValue{v: VariablePointer{Name: name, ContextIndex: contextIndex}}
}

func (p *VariablePointerValue) Value() VariablePointer { return p.v }
func (p *VariablePointerValue) Type() ValueType { return TypeVariablePointer }
func (p *VariablePointerValue) IsTruthy() bool { return true }
func (p *VariablePointerValue) Payload() any { return p.v }
func (p *VariablePointerValue) isValue() {}

func (p *VariablePointerValue) String() string {
	return fmt.Sprintf("VariablePointerValue(%s)", p.v.Name)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
