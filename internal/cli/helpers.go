package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/aretw0/inkling"
	"github.com/aretw0/inkling/internal/compiler"
	"github.com/aretw0/inkling/internal/logging"
	"github.com/aretw0/inkling/pkg/content"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// CreateLogger configures the application logger from a level name.
// An empty level disables logging.
func CreateLogger(level string) (*slog.Logger, error) {
	if level == "" {
		return logging.NewNop(), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

func createDebugHooks(logger *slog.Logger) inkling.Hooks {
	return inkling.Hooks{
		OnResolve: func(ctx context.Context, e *inkling.ResolveEvent) {
			logger.Debug("Resolve", "story", e.Story, "path", e.Path, "approximate", e.Approximate)
		},
		OnVisit: func(ctx context.Context, e *inkling.VisitEvent) {
			logger.Debug("Visit", "story", e.Story, "path", e.Path, "counted", e.Counted, "visits", e.Visits)
		},
	}
}

// loadTree reads and compiles a single tree document.
func loadTree(file string) (*content.Container, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	root, err := compiler.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", file, err)
	}
	return root, nil
}

// loadStory wraps loadTree in a Story named after the file.
func loadStory(file string, logger *slog.Logger) (*inkling.Story, error) {
	root, err := loadTree(file)
	if err != nil {
		return nil, err
	}
	return inkling.New(root,
		inkling.WithName(file),
		inkling.WithLogger(logger),
		inkling.WithHooks(createDebugHooks(logger)),
	)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func sortStrings(s []string) []string {
	sort.Strings(s)
	return s
}
