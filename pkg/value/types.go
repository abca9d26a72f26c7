package value

import (
	"errors"
	"fmt"
	"strings"
)

// ValueType tags the variant of a Value. The numeric order matters: numeric
// kinds are ordered by how much they can represent.
type ValueType int

const (
	TypeBool ValueType = iota - 1
	TypeInt
	TypeFloat
	TypeList
	TypeString
	TypeDivertTarget
	TypeVariablePointer
)

// ErrUnknownType is returned by ParseType for unrecognised names.
var ErrUnknownType = errors.New("unknown value type")

var typeNames = map[ValueType]string{
	TypeBool:            "Bool",
	TypeInt:             "Int",
	TypeFloat:           "Float",
	TypeList:            "List",
	TypeString:          "String",
	TypeDivertTarget:    "DivertTarget",
	TypeVariablePointer: "VariablePointer",
}

var shortNames = map[ValueType]string{
	TypeBool:            "bool",
	TypeInt:             "int",
	TypeFloat:           "float",
	TypeList:            "list",
	TypeString:          "string",
	TypeDivertTarget:    "divert",
	TypeVariablePointer: "pointer",
}

func (t ValueType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// ParseType accepts the short names (bool, int, float, list, string, divert,
// pointer) and the full type names, case-insensitively.
func ParseType(s string) (ValueType, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for t, short := range shortNames {
		if needle == short || needle == strings.ToLower(typeNames[t]) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// MarshalText encodes the type by its short name.
func (t ValueType) MarshalText() ([]byte, error) {
	short, ok := shortNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	return []byte(short), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ValueType) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
