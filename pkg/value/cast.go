package value

import (
	"errors"
	"math"
	"strconv"
)

var errNotFinite = errors.New("value is not a finite number in int range")

// Cast converts the value to t.
// Identity casts return a fresh, unparented copy.
func (b *BoolValue) Cast(t ValueType) (Value, error) {
	switch t {
	case TypeBool:
		return NewBool(b.v), nil
	case TypeInt:
		if b.v {
			return NewInt(1), nil
		}
		return NewInt(0), nil
	case TypeFloat:
		if b.v {
			return NewFloat(1), nil
		}
		return NewFloat(0), nil
	}
	return nil, badCast(TypeBool, t)
}

func (i *IntValue) Cast(t ValueType) (Value, error) {
	switch t {
	case TypeInt:
		return NewInt(i.v), nil
	case TypeFloat:
		return NewFloat(float64(i.v)), nil
	case TypeBool:
		return NewBool(i.v != 0), nil
	case TypeString:
		return NewString(strconv.Itoa(i.v)), nil
	}
	return nil, badCast(TypeInt, t)
}

func (f *FloatValue) Cast(t ValueType) (Value, error) {
	switch t {
	case TypeFloat:
		return NewFloat(f.v), nil
	case TypeInt:
		n, err := truncate(f.v)
		if err != nil {
			return nil, badConversion(TypeFloat, t, err)
		}
		return NewInt(n), nil
	case TypeBool:
		return NewBool(f.v != 0), nil
	case TypeString:
		return NewString(formatFloat(f.v)), nil
	}
	return nil, badCast(TypeFloat, t)
}

func (s *StringValue) Cast(t ValueType) (Value, error) {
	switch t {
	case TypeString:
		return NewString(s.v), nil
	case TypeInt:
		n, err := strconv.Atoi(s.v)
		if err != nil {
			return nil, badConversion(TypeString, t, err)
		}
		return NewInt(n), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(s.v, 64)
		if err != nil {
			return nil, badConversion(TypeString, t, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, badConversion(TypeString, t, errNotFinite)
		}
		return NewFloat(f), nil
	}
	return nil, badCast(TypeString, t)
}

// Cast of a list to a number or string uses its highest-valued item. Empty
// lists give 0 and "".
func (l *ListValue) Cast(t ValueType) (Value, error) {
	if t == TypeList {
		return NewListValue(l.v.Clone()), nil
	}

	maxEntry, ok := l.v.MaxItem()
	switch t {
	case TypeInt:
		return NewInt(maxEntry.Value), nil
	case TypeFloat:
		return NewFloat(float64(maxEntry.Value)), nil
	case TypeString:
		if !ok {
			return NewString(""), nil
		}
		return NewString(maxEntry.Item.FullName()), nil
	}
	return nil, badCast(TypeList, t)
}

func (d *DivertTargetValue) Cast(t ValueType) (Value, error) {
	if t == TypeDivertTarget {
		return NewDivertTarget(d.target), nil
	}
	return nil, badCast(TypeDivertTarget, t)
}

func (p *VariablePointerValue) Cast(t ValueType) (Value, error) {
	if t == TypeVariablePointer {
		return NewVariablePointer(p.v.Name, p.v.ContextIndex), nil
	}
	return nil, badCast(TypeVariablePointer, t)
}

// truncate converts toward zero, rejecting values with no int equivalent.
func truncate(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	t := math.Trunc(f)
	if t < math.MinInt || t >= math.MaxInt {
		return 0, errNotFinite
	}
	return int(t), nil
}
