package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/inkling/pkg/ports"
)

// Extensions recognised as story documents, in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// Loader implements ports.StoryLoader and ports.StoryWriter over a directory.
// Each story is a single file named <id><ext>.
type Loader struct {
	BasePath string
}

// New creates a new Loader with the given base path.
// If basePath is empty, it defaults to "stories".
func New(basePath string) *Loader {
	if basePath == "" {
		basePath = "stories"
	}
	return &Loader{BasePath: basePath}
}

// LoadStory reads the document for id.
func (l *Loader) LoadStory(ctx context.Context, id string) ([]byte, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	for _, ext := range Extensions {
		data, err := os.ReadFile(filepath.Join(l.BasePath, id+ext))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read story file: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ports.ErrStoryNotFound, id)
}

// ListStories returns the IDs of every story file in the directory.
func (l *Loader) ListStories(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "tmp-") {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !isStoryExt(ext) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ext)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// SaveStory writes doc as <id>.yaml atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (l *Loader) SaveStory(ctx context.Context, id string, doc []byte) error {
	if err := validateID(id); err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(l.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure story directory: %w", err)
	}

	destPath := filepath.Join(l.BasePath, id+".yaml")

	// 1. Create Temp File
	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(l.BasePath, "tmp-"+id+"-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()    // Ensure closed
		_ = os.Remove(tmpPath) // Remove if still exists (not renamed)
	}()

	// 2. Write Data
	if _, err := tmpFile.Write(doc); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// 3. Fsync to ensure durability
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// 4. Close File (cannot rename open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// 5. Atomic Rename
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to story: %w", err)
	}

	// Drop copies of the same story under the other extensions.
	for _, ext := range Extensions[1:] {
		stale := filepath.Join(l.BasePath, id+ext)
		if err := os.Remove(stale); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove stale story file: %w", err)
		}
	}
	return nil
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("story id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid story id %q", id)
	}
	return nil
}

func isStoryExt(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
