package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/inkling/internal/dto"
	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/path"
	"github.com/aretw0/inkling/pkg/value"
)

// Parser is responsible for converting raw story documents into content trees.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse is a shorthand for NewParser().Parse(data).
func Parse(data []byte) (*content.Container, error) {
	return NewParser().Parse(data)
}

// Parse decodes a YAML (or JSON) tree document into a root container.
// Every node is attached through the container mutation API, so the
// resulting tree honours the ownership and naming rules.
func (p *Parser) Parse(data []byte) (*content.Container, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &DocumentError{Err: fmt.Errorf("failed to decode document: %w", err)}
	}
	if raw == nil {
		return nil, &DocumentError{Err: ErrEmptyDocument}
	}
	return p.container(raw, "")
}

func (p *Parser) container(raw any, at string) (*content.Container, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, docErr(at, fmt.Errorf("expected a container mapping, got %T", raw))
	}

	var doc dto.ContainerDoc
	if err := decodeStrict(m, &doc); err != nil {
		return nil, docErr(at, err)
	}

	c := content.NewContainer("")
	if err := c.SetName(doc.Name); err != nil {
		return nil, docErr(at, err)
	}
	if doc.Flags != nil {
		c.SetCountFlags(*doc.Flags)
	} else {
		c.SetVisitsShouldBeCounted(doc.Visits)
		c.SetTurnIndexShouldBeCounted(doc.Turns)
		c.SetCountingAtStartOnly(doc.StartOnly)
	}

	for i, item := range doc.Content {
		itemAt := join(at, fmt.Sprintf("content[%d]", i))
		obj, err := p.object(item, itemAt)
		if err != nil {
			return nil, err
		}
		if err := c.AddContent(obj); err != nil {
			return nil, docErr(itemAt, err)
		}
	}

	for i, item := range doc.Named {
		itemAt := join(at, fmt.Sprintf("named[%d]", i))
		child, err := p.container(item, itemAt)
		if err != nil {
			return nil, err
		}
		if err := c.AddToNamedContentOnly(child); err != nil {
			return nil, docErr(itemAt, err)
		}
	}

	return c, nil
}

func (p *Parser) object(raw any, at string) (content.Object, error) {
	switch v := raw.(type) {
	case nil:
		return nil, docErr(at, fmt.Errorf("null content entry"))
	case []any:
		return nil, docErr(at, fmt.Errorf("nested sequences are not content, wrap them in a container"))
	case map[string]any:
		switch {
		case has(v, dto.KeyDivert):
			return divert(v, at)
		case has(v, dto.KeyVar):
			return pointer(v, at)
		case has(v, dto.KeyList):
			return list(v, at)
		default:
			return p.container(v, at)
		}
	default:
		val, ok := value.Create(raw)
		if !ok {
			return nil, docErr(at, fmt.Errorf("unsupported scalar %v (%T)", raw, raw))
		}
		return val, nil
	}
}

func divert(m map[string]any, at string) (content.Object, error) {
	var doc dto.DivertDoc
	if err := decodeStrict(m, &doc); err != nil {
		return nil, docErr(at, err)
	}
	target, err := path.Parse(doc.Divert)
	if err != nil {
		return nil, docErr(at, err)
	}
	return value.NewDivertTarget(target), nil
}

func pointer(m map[string]any, at string) (content.Object, error) {
	var doc dto.PointerDoc
	if err := decodeStrict(m, &doc); err != nil {
		return nil, docErr(at, err)
	}
	if doc.Var == "" {
		return nil, docErr(at, fmt.Errorf("variable pointer without a name"))
	}
	ci := -1
	if doc.ContextIndex != nil {
		ci = *doc.ContextIndex
	}
	return value.NewVariablePointer(doc.Var, ci), nil
}

func list(m map[string]any, at string) (content.Object, error) {
	var doc dto.ListDoc
	if err := decodeStrict(m, &doc); err != nil {
		return nil, docErr(at, err)
	}

	names := make([]string, 0, len(doc.List))
	for name := range doc.List {
		names = append(names, name)
	}
	sort.Strings(names)

	l := value.NewList()
	for _, name := range names {
		item := value.ListItem{Item: name}
		if i := strings.LastIndex(name, "."); i >= 0 {
			item = value.ListItem{Origin: name[:i], Item: name[i+1:]}
		}
		if item.Item == "" {
			return nil, docErr(at, fmt.Errorf("list entry %q has no item name", name))
		}
		l.Add(item, doc.List[name])
	}
	return value.NewListValue(l), nil
}

func decodeStrict(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func has(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func join(at, step string) string {
	if at == "" {
		return step
	}
	return at + "." + step
}
