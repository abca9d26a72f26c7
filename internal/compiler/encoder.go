package compiler

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/inkling/internal/dto"
	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/value"
)

// Encode renders a content tree as a YAML tree document that Parse accepts.
// Whole floats keep a decimal point so they decode as floats again.
func Encode(root *content.Container) ([]byte, error) {
	if root == nil {
		return nil, &DocumentError{Err: fmt.Errorf("nil root")}
	}
	node, err := containerNode(root, "")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func containerNode(c *content.Container, at string) (*yaml.Node, error) {
	m := mapping()
	if c.Name() != "" {
		m.Content = append(m.Content, str("name"), str(c.Name()))
	}
	if c.VisitsShouldBeCounted() {
		m.Content = append(m.Content, str("visits"), boolean(true))
	}
	if c.TurnIndexShouldBeCounted() {
		m.Content = append(m.Content, str("turns"), boolean(true))
	}
	if c.CountingAtStartOnly() {
		m.Content = append(m.Content, str("start_only"), boolean(true))
	}

	if objs := c.Content(); len(objs) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i, obj := range objs {
			item, err := objectNode(obj, join(at, fmt.Sprintf("content[%d]", i)))
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, item)
		}
		m.Content = append(m.Content, str("content"), seq)
	}

	if named := c.NamedOnlyContent(); len(named) > 0 {
		names := make([]string, 0, len(named))
		for name := range named {
			names = append(names, name)
		}
		sort.Strings(names)

		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i, name := range names {
			itemAt := join(at, fmt.Sprintf("named[%d]", i))
			child, ok := named[name].(*content.Container)
			if !ok {
				return nil, docErr(itemAt, fmt.Errorf("named-only entry %q is not a container", name))
			}
			item, err := containerNode(child, itemAt)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, item)
		}
		m.Content = append(m.Content, str("named"), seq)
	}
	return m, nil
}

func objectNode(obj content.Object, at string) (*yaml.Node, error) {
	switch v := obj.(type) {
	case *content.Container:
		return containerNode(v, at)
	case *value.BoolValue:
		return boolean(v.Value()), nil
	case *value.IntValue:
		return scalar("!!int", strconv.Itoa(v.Value())), nil
	case *value.FloatValue:
		return floatNode(v.Value()), nil
	case *value.StringValue:
		return str(v.Value()), nil
	case *value.DivertTargetValue:
		return mapping(str(dto.KeyDivert), str(v.Value().String())), nil
	case *value.VariablePointerValue:
		ptr := v.Value()
		m := mapping(str(dto.KeyVar), str(ptr.Name))
		if ptr.ContextIndex != -1 {
			m.Content = append(m.Content, str("ci"), scalar("!!int", strconv.Itoa(ptr.ContextIndex)))
		}
		return m, nil
	case *value.ListValue:
		items := mapping()
		for _, e := range v.Value().Items() {
			items.Content = append(items.Content, str(e.Item.FullName()), scalar("!!int", strconv.Itoa(e.Value)))
		}
		return mapping(str(dto.KeyList), items), nil
	default:
		return nil, docErr(at, fmt.Errorf("cannot encode %T", obj))
	}
}

func mapping(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: pairs}
}

func scalar(tag, v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v}
}

func str(s string) *yaml.Node { return scalar("!!str", s) }

func boolean(b bool) *yaml.Node { return scalar("!!bool", strconv.FormatBool(b)) }

func floatNode(f float64) *yaml.Node {
	switch {
	case math.IsNaN(f):
		return scalar("!!float", ".nan")
	case math.IsInf(f, 1):
		return scalar("!!float", ".inf")
	case math.IsInf(f, -1):
		return scalar("!!float", "-.inf")
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return scalar("!!float", s)
}
