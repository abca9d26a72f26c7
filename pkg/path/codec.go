package path

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalJSON serializes the path as its string form.
func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON deserializes a path from its string form.
func (p *Path) UnmarshalJSON(data []byte) error {
	if p == nil {
		return fmt.Errorf("path: UnmarshalJSON on nil pointer")
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("path: expected string: %w", err)
	}
	return p.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler.
func (p Path) MarshalYAML() (any, error) {
	return p.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Path) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("path: line %d: expected scalar, got kind %d", node.Line, node.Kind)
	}
	return p.UnmarshalText([]byte(node.Value))
}
