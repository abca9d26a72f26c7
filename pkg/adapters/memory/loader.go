package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/inkling/pkg/ports"
)

// Loader implements ports.StoryLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu      sync.RWMutex
	stories map[string][]byte
}

// NewLoader creates a new Loader with the provided raw documents (YAML or JSON strings).
func NewLoader(data map[string]string) *Loader {
	stories := make(map[string][]byte, len(data))
	for k, v := range data {
		stories[k] = []byte(v)
	}
	return &Loader{
		stories: stories,
	}
}

// Put adds or replaces a story document.
func (l *Loader) Put(id string, doc []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stories == nil {
		l.stories = make(map[string][]byte)
	}
	l.stories[id] = append([]byte(nil), doc...)
}

// SaveStory implements ports.StoryWriter.
func (l *Loader) SaveStory(ctx context.Context, id string, doc []byte) error {
	if id == "" {
		return fmt.Errorf("story id cannot be empty")
	}
	l.Put(id, doc)
	return nil
}

// LoadStory retrieves the raw document of a story by ID.
func (l *Loader) LoadStory(ctx context.Context, id string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	doc, ok := l.stories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrStoryNotFound, id)
	}
	return append([]byte(nil), doc...), nil
}

// ListStories returns all available story IDs.
func (l *Loader) ListStories(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.stories))
	for k := range l.stories {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
