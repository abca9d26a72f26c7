package memory

import (
	"context"
	"sync"
)

// Store implements ports.CounterStore in memory.
// Safe for concurrent use.
type Store struct {
	visits map[string]int
	turns  map[string]int
	mu     sync.RWMutex
}

// NewStore creates a new in-memory counter store.
func NewStore() *Store {
	return &Store{
		visits: make(map[string]int),
		turns:  make(map[string]int),
	}
}

// IncrementVisits adds one visit to key.
func (s *Store) IncrementVisits(ctx context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits[key]++
	return s.visits[key], nil
}

// VisitCount returns the visits recorded for key.
func (s *Store) VisitCount(ctx context.Context, key string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visits[key], nil
}

// SetTurnIndex records the last turn key was visited in.
func (s *Store) SetTurnIndex(ctx context.Context, key string, turn int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[key] = turn
	return nil
}

// TurnIndex returns the last recorded turn for key.
func (s *Store) TurnIndex(ctx context.Context, key string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turn, ok := s.turns[key]
	return turn, ok, nil
}

// Reset removes every counter.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits = make(map[string]int)
	s.turns = make(map[string]int)
	return nil
}

// Snapshot returns a copy of the visit counts, keyed by path.
func (s *Store) Snapshot() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.visits))
	for k, v := range s.visits {
		out[k] = v
	}
	return out
}
