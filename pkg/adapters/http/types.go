package http

import (
	"fmt"
	"net/http"

	"github.com/aretw0/inkling"
	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/value"
)

// ObjectView is the JSON form of a content object.
type ObjectView struct {
	Path string `json:"path"`
	// Kind is "container" or a value type name such as "Int".
	Kind  string `json:"kind"`
	Name  string `json:"name,omitempty"`
	Len   *int   `json:"len,omitempty"`
	Value string `json:"value,omitempty"`
}

// ResolveResponse is returned by the resolve and leaf endpoints.
type ResolveResponse struct {
	Path        string      `json:"path"`
	Approximate bool        `json:"approximate"`
	Object      *ObjectView `json:"object"`
}

// VisitRequest is the body of POST /stories/{id}/visits.
type VisitRequest struct {
	Path    string `json:"path"`
	AtStart bool   `json:"at_start"`
}

// VisitsResponse reports a container's counters. Untracked counters are omitted.
type VisitsResponse struct {
	Path       string `json:"path"`
	Turn       int    `json:"turn"`
	Visits     *int   `json:"visits,omitempty"`
	TurnsSince *int   `json:"turns_since,omitempty"`
}

func describeObject(obj content.Object) *ObjectView {
	if obj == nil {
		return nil
	}
	view := &ObjectView{Path: obj.Path().String()}
	switch o := obj.(type) {
	case *content.Container:
		n := o.Len()
		view.Kind = "container"
		view.Name = o.Name()
		view.Len = &n
	case value.Value:
		view.Kind = o.Type().String()
		view.Value = o.String()
	default:
		view.Kind = fmt.Sprintf("%T", obj)
	}
	return view
}

// container resolves raw exactly and requires a container at the end.
func (s *Server) container(w http.ResponseWriter, r *http.Request, story *inkling.Story, raw string) (*content.Container, bool) {
	p, ok := queryPath(w, raw)
	if !ok {
		return nil, false
	}
	res := story.ContentAtPath(r.Context(), p)
	c, isContainer := res.Obj.(*content.Container)
	if res.Approximate || !isContainer {
		http.Error(w, fmt.Sprintf("No container at '%s'", p), http.StatusNotFound)
		return nil, false
	}
	return c, true
}
