package inkling

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/inkling/pkg/content"
)

// Visit records that execution entered c. atStart is true when it entered
// at the container's first element. Containers flagged as counting at start
// only ignore other entries.
func (s *Story) Visit(ctx context.Context, c *content.Container, atStart bool) error {
	if c == nil {
		return fmt.Errorf("visit: %w", ErrNilRoot)
	}

	key := counterKey(c)
	event := &VisitEvent{
		Timestamp: time.Now(),
		Story:     s.name,
		Path:      key,
		AtStart:   atStart,
		Turn:      s.CurrentTurn(),
	}

	if c.CountingAtStartOnly() && !atStart {
		s.hooks.visit(ctx, event)
		return nil
	}

	if c.VisitsShouldBeCounted() {
		n, err := s.counters.IncrementVisits(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to count visit to '%s': %w", key, err)
		}
		event.Visits = n
		event.Counted = true
	}
	if c.TurnIndexShouldBeCounted() {
		if err := s.counters.SetTurnIndex(ctx, key, event.Turn); err != nil {
			return fmt.Errorf("failed to record turn for '%s': %w", key, err)
		}
		event.Counted = true
	}

	if event.Counted {
		s.logger.Debug("Visited container", "path", key, "visits", event.Visits, "turn", event.Turn)
	}
	s.hooks.visit(ctx, event)
	return nil
}

// VisitCount returns how many counted entries c has had.
func (s *Story) VisitCount(ctx context.Context, c *content.Container) (int, error) {
	if c == nil || !c.VisitsShouldBeCounted() {
		return 0, ErrNotCounted
	}
	return s.counters.VisitCount(ctx, counterKey(c))
}

// TurnsSince returns the number of turns since c was last entered, or -1
// if it never was.
func (s *Story) TurnsSince(ctx context.Context, c *content.Container) (int, error) {
	if c == nil || !c.TurnIndexShouldBeCounted() {
		return 0, ErrNotCounted
	}
	idx, ok, err := s.counters.TurnIndex(ctx, counterKey(c))
	if err != nil {
		return 0, err
	}
	if !ok {
		return -1, nil
	}
	return s.CurrentTurn() - idx, nil
}

// NextTurn advances the turn counter and returns the new turn.
func (s *Story) NextTurn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turn++
	return s.turn
}

// CurrentTurn returns the current turn, starting at 0.
func (s *Story) CurrentTurn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// Reset clears every counter and rewinds the turn to 0.
func (s *Story) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.turn = 0
	s.mu.Unlock()

	if err := s.counters.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset counters: %w", err)
	}
	return nil
}

// counterKey identifies a container by its absolute path.
func counterKey(c *content.Container) string {
	return c.Path().String()
}
