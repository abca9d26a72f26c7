package value

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/inkling/pkg/path"
)

// ErrInvalidLiteral is returned by Parse for text that is not a literal of
// the requested type.
var ErrInvalidLiteral = errors.New("invalid literal")

// Parse reads the textual literal of a value of type t, as typed on a
// command line:
//
//	bool     true, false
//	int      -3
//	float    2.5
//	string   any text
//	divert   knot.stitch.0
//	pointer  name or name@contextIndex
//	list     origin.item=1,other=2
func Parse(raw string, t ValueType) (Value, error) {
	switch t {
	case TypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, literalErr(raw, t, err)
		}
		return NewBool(b), nil
	case TypeInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, literalErr(raw, t, err)
		}
		return NewInt(n), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, literalErr(raw, t, err)
		}
		return NewFloat(f), nil
	case TypeString:
		return NewString(raw), nil
	case TypeDivertTarget:
		p, err := path.Parse(raw)
		if err != nil {
			return nil, literalErr(raw, t, err)
		}
		return NewDivertTarget(p), nil
	case TypeVariablePointer:
		return parsePointer(raw)
	case TypeList:
		return parseList(raw)
	}
	return nil, literalErr(raw, t, ErrUnknownType)
}

func parsePointer(raw string) (Value, error) {
	name, ci, hasIndex := strings.Cut(raw, "@")
	if name == "" {
		return nil, literalErr(raw, TypeVariablePointer, errors.New("empty variable name"))
	}
	if !hasIndex {
		return NewVariablePointer(name, -1), nil
	}
	idx, err := strconv.Atoi(ci)
	if err != nil {
		return nil, literalErr(raw, TypeVariablePointer, err)
	}
	return NewVariablePointer(name, idx), nil
}

func parseList(raw string) (Value, error) {
	l := NewList()
	if strings.TrimSpace(raw) == "" {
		return NewListValue(l), nil
	}
	for _, part := range strings.Split(raw, ",") {
		name, num, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, literalErr(raw, TypeList, fmt.Errorf("entry %q has no value", part))
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return nil, literalErr(raw, TypeList, err)
		}
		item := ListItem{Item: name}
		if i := strings.LastIndex(name, "."); i >= 0 {
			item = ListItem{Origin: name[:i], Item: name[i+1:]}
		}
		if item.Item == "" {
			return nil, literalErr(raw, TypeList, fmt.Errorf("entry %q has no item name", part))
		}
		l.Add(item, n)
	}
	return NewListValue(l), nil
}

func literalErr(raw string, t ValueType, cause error) error {
	return fmt.Errorf("%w: %q as %s: %v", ErrInvalidLiteral, raw, t, cause)
}
