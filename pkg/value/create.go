package value

import (
	"encoding/json"
	"math"

	"github.com/aretw0/inkling/pkg/path"
)

// Create wraps a raw Go value in the matching Value variant. Booleans win
// over integers, integers over floats, floats over strings, strings over
// paths and paths over lists; json.Number is tried as an integer first.
// Unsupported kinds, including nil, report false.
func Create(raw any) (Value, bool) {
	switch v := raw.(type) {
	case bool:
		return NewBool(v), true
	case int:
		return NewInt(v), true
	case int8:
		return NewInt(int(v)), true
	case int16:
		return NewInt(int(v)), true
	case int32:
		return NewInt(int(v)), true
	case int64:
		return intFrom64(v)
	case uint:
		return uintValue(uint64(v))
	case uint8:
		return NewInt(int(v)), true
	case uint16:
		return NewInt(int(v)), true
	case uint32:
		return uintValue(uint64(v))
	case uint64:
		return uintValue(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return intFrom64(n)
		}
		if f, err := v.Float64(); err == nil {
			return NewFloat(f), true
		}
		return nil, false
	case float32:
		return NewFloat(float64(v)), true
	case float64:
		return NewFloat(v), true
	case string:
		return NewString(v), true
	case path.Path:
		return NewDivertTarget(v), true
	case *path.Path:
		if v == nil {
			return nil, false
		}
		return NewDivertTarget(*v), true
	case *List:
		if v == nil {
			return nil, false
		}
		return NewListValue(v), true
	case List:
		return NewListValue(v.Clone()), true
	default:
		return nil, false
	}
}

func intFrom64(n int64) (Value, bool) {
	if n < math.MinInt || n > math.MaxInt {
		return nil, false
	}
	return NewInt(int(n)), true
}

func uintValue(n uint64) (Value, bool) {
	if n > math.MaxInt {
		return nil, false
	}
	return NewInt(int(n)), true
}
