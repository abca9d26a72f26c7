package ports

import "context"

// CounterStore persists the visit and turn counters of a running story.
// Keys are absolute container paths. Implementations must be safe for
// concurrent use.
type CounterStore interface {
	// IncrementVisits adds one visit to key and returns the new count.
	IncrementVisits(ctx context.Context, key string) (int, error)

	// VisitCount returns the visits recorded for key, 0 when none.
	VisitCount(ctx context.Context, key string) (int, error)

	// SetTurnIndex records the turn in which key was last visited.
	SetTurnIndex(ctx context.Context, key string, turn int) error

	// TurnIndex returns the last recorded turn for key. The boolean is false
	// when key was never recorded.
	TurnIndex(ctx context.Context, key string) (int, bool, error)

	// Reset removes every counter.
	Reset(ctx context.Context) error
}
