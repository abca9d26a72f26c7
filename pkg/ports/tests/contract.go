package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/inkling/pkg/ports"
)

// StoryLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.StoryLoader.
func StoryLoaderContractTest(t *testing.T, loader ports.StoryLoader, setupData map[string][]byte) {
	t.Helper()
	ctx := context.Background()

	// 1. Test LoadStory (Success)
	t.Run("LoadStory_Success", func(t *testing.T) {
		for id, expectedContent := range setupData {
			content, err := loader.LoadStory(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error loading story %s: %v", id, err)
			}
			if string(content) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", id, content, expectedContent)
			}
		}
	})

	// 2. Test LoadStory (NotFound)
	t.Run("LoadStory_NotFound", func(t *testing.T) {
		_, err := loader.LoadStory(ctx, "non-existent-story")
		if !errors.Is(err, ports.ErrStoryNotFound) {
			t.Errorf("expected ErrStoryNotFound for non-existent story, got %v", err)
		}
	})

	// 3. Test ListStories
	t.Run("ListStories", func(t *testing.T) {
		ids, err := loader.ListStories(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing stories: %v", err)
		}

		if len(ids) != len(setupData) {
			t.Errorf("expected %d stories, got %d", len(setupData), len(ids))
		}

		// Verify all expected IDs are present
		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}

		for id := range setupData {
			if !lookup[id] {
				t.Errorf("story %s missing from list", id)
			}
		}

		for i := 1; i < len(ids); i++ {
			if ids[i-1] > ids[i] {
				t.Errorf("expected sorted ids, got %v", ids)
				break
			}
		}
	})
}
