package inkling

import (
	"context"
	"time"
)

// ResolveEvent describes a path lookup made through a Story.
type ResolveEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Story       string    `json:"story"`
	Path        string    `json:"path"`
	Approximate bool      `json:"approximate"`
	// Found is the Go type of the object reached, e.g. "*content.Container".
	Found string `json:"found"`
}

// VisitEvent describes a container entry reported through Story.Visit.
type VisitEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Story     string    `json:"story"`
	Path      string    `json:"path"`
	AtStart   bool      `json:"at_start"`
	// Counted is false when the container's flags ignored the entry.
	Counted bool `json:"counted"`
	Visits  int  `json:"visits"`
	Turn    int  `json:"turn"`
}

// Hooks defines callbacks for story observability. Nil fields are skipped.
type Hooks struct {
	OnResolve func(context.Context, *ResolveEvent)
	OnVisit   func(context.Context, *VisitEvent)
}

func (h Hooks) resolve(ctx context.Context, e *ResolveEvent) {
	if h.OnResolve != nil {
		h.OnResolve(ctx, e)
	}
}

func (h Hooks) visit(ctx context.Context, e *VisitEvent) {
	if h.OnVisit != nil {
		h.OnVisit(ctx, e)
	}
}

// Combine merges several hook sets into one that calls each in order.
func Combine(hooks ...Hooks) Hooks {
	return Hooks{
		OnResolve: func(ctx context.Context, e *ResolveEvent) {
			for _, h := range hooks {
				h.resolve(ctx, e)
			}
		},
		OnVisit: func(ctx context.Context, e *VisitEvent) {
			for _, h := range hooks {
				h.visit(ctx, e)
			}
		},
	}
}
