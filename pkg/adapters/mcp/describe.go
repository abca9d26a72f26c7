package mcp

import (
	"fmt"

	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/value"
)

func describe(obj content.Object) *ObjectView {
	if obj == nil {
		return nil
	}
	view := &ObjectView{Path: obj.Path().String()}
	switch o := obj.(type) {
	case *content.Container:
		view.Kind = "container"
	case value.Value:
		view.Kind = o.Type().String()
		view.Value = o.String()
	default:
		view.Kind = fmt.Sprintf("%T", obj)
	}
	return view
}
