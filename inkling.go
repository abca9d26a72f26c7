package inkling

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/inkling/internal/compiler"
	"github.com/aretw0/inkling/pkg/adapters/memory"
	"github.com/aretw0/inkling/pkg/content"
	"github.com/aretw0/inkling/pkg/path"
	"github.com/aretw0/inkling/pkg/ports"
)

var (
	// ErrNilRoot is returned when a Story is created without a tree.
	ErrNilRoot = errors.New("nil root container")
	// ErrNotCounted is returned when reading a counter the container does not track.
	ErrNotCounted = errors.New("container does not count this")
)

// Story is the high-level entry point for the inkling library.
// It wraps a loaded content tree and provides the lookups an executor
// needs, plus visit and turn bookkeeping driven by the containers' count flags.
//
// The tree is treated as frozen once the Story is created.
type Story struct {
	root     *content.Container
	name     string
	logger   *slog.Logger
	hooks    Hooks
	counters ports.CounterStore

	mu   sync.Mutex
	turn int
}

// Option defines a functional option for configuring the Story.
type Option func(*Story)

// WithLogger sets a custom structured logger for the story.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Story) {
		s.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(s *Story) {
		s.hooks = hooks
	}
}

// WithCounterStore sets where visit counts and turn indices are kept
// (default: in memory).
func WithCounterStore(store ports.CounterStore) Option {
	return func(s *Story) {
		s.counters = store
	}
}

// WithName sets a descriptive label used in logs and events.
func WithName(name string) Option {
	return func(s *Story) {
		s.name = name
	}
}

// New wraps root in a Story.
func New(root *content.Container, opts ...Option) (*Story, error) {
	if root == nil {
		return nil, ErrNilRoot
	}

	s := &Story{root: root}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if s.name != "" {
		s.logger = s.logger.With("story", s.name)
	}
	if s.counters == nil {
		s.counters = memory.NewStore()
	}

	return s, nil
}

// Load reads the story document id from loader and compiles it.
// The id becomes the story name unless WithName overrides it.
func Load(ctx context.Context, loader ports.StoryLoader, id string, opts ...Option) (*Story, error) {
	data, err := loader.LoadStory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load story %q: %w", id, err)
	}

	root, err := compiler.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compile story %q: %w", id, err)
	}

	return New(root, append([]Option{WithName(id)}, opts...)...)
}

// Root returns the root container.
func (s *Story) Root() *content.Container { return s.root }

// Name returns the story label.
func (s *Story) Name() string { return s.name }

// ContentAtPath resolves p from the root. Approximate hits are logged,
// since they usually point at a stale divert.
func (s *Story) ContentAtPath(ctx context.Context, p path.Path) content.SearchResult {
	res := s.root.ContentAtPath(p)

	if res.Approximate {
		s.logger.Warn("Approximate content lookup", "path", p.String(), "reached", describe(res.Obj))
	} else {
		s.logger.Debug("Resolved content", "path", p.String())
	}

	s.hooks.resolve(ctx, &ResolveEvent{
		Timestamp:   time.Now(),
		Story:       s.name,
		Path:        p.String(),
		Approximate: res.Approximate,
		Found:       fmt.Sprintf("%T", res.Obj),
	})
	return res
}

// LandingPoint resolves p and, when it names a container, follows the
// first-child chain down to the object execution would start at.
// An approximate lookup returns the deepest object reached and false.
func (s *Story) LandingPoint(ctx context.Context, p path.Path) (content.Object, bool) {
	res := s.ContentAtPath(ctx, p)
	if res.Approximate {
		return res.Obj, false
	}
	c, ok := res.Obj.(*content.Container)
	if !ok {
		return res.Obj, true
	}

	leaf := c.ContentAtPath(c.InternalPathToFirstLeafContent())
	return leaf.Obj, !leaf.Approximate
}

// Hierarchy renders the tree, marking pointed when it is non-nil.
func (s *Story) Hierarchy(pointed content.Object) string {
	if pointed == nil {
		return s.root.BuildStringOfHierarchy()
	}
	return s.root.BuildStringOfHierarchyPointing(pointed)
}

func describe(obj content.Object) string {
	if obj == nil {
		return "<nil>"
	}
	return obj.Path().String()
}
