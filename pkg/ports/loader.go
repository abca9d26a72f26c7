package ports

import (
	"context"
	"errors"
)

// ErrStoryNotFound is returned by a StoryLoader for unknown story IDs.
var ErrStoryNotFound = errors.New("story not found")

// StoryLoader defines how story documents are retrieved.
// This allows the storage layer (FS, Memory) to be decoupled from the compiler.
type StoryLoader interface {
	// LoadStory retrieves the raw tree document of a story by ID.
	// It returns the raw bytes (which the compiler will parse) or an error
	// wrapping ErrStoryNotFound.
	LoadStory(ctx context.Context, id string) ([]byte, error)

	// ListStories returns the IDs of all available stories, sorted.
	// This is used for introspection tools (e.g. 'inkling serve').
	ListStories(ctx context.Context) ([]string, error)
}

// StoryWriter is implemented by loaders that can persist documents.
type StoryWriter interface {
	// SaveStory stores doc under id, replacing any previous version.
	SaveStory(ctx context.Context, id string, doc []byte) error
}
