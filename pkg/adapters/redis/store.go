package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "inkling:counters:"

// Store implements ports.CounterStore using Redis.
// Visit counts and turn indices live in two hashes keyed by container path,
// so increments stay atomic across processes.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of the counter hashes, refreshed on every write.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix, typically one per story or save slot.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: defaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) visitsKey() string {
	return s.prefix + "visits"
}

func (s *Store) turnsKey() string {
	return s.prefix + "turns"
}

// IncrementVisits adds one visit to key.
func (s *Store) IncrementVisits(ctx context.Context, key string) (int, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.HIncrBy(ctx, s.visitsKey(), key, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.visitsKey(), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to increment visits in redis: %w", err)
	}
	return int(incr.Val()), nil
}

// VisitCount returns the visits recorded for key.
func (s *Store) VisitCount(ctx context.Context, key string) (int, error) {
	val, err := s.client.HGet(ctx, s.visitsKey(), key).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get visits from redis: %w", err)
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("corrupt visit count for %q: %w", key, err)
	}
	return n, nil
}

// SetTurnIndex records the last turn key was visited in.
func (s *Store) SetTurnIndex(ctx context.Context, key string, turn int) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.turnsKey(), key, turn)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.turnsKey(), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save turn index to redis: %w", err)
	}
	return nil
}

// TurnIndex returns the last recorded turn for key.
func (s *Store) TurnIndex(ctx context.Context, key string) (int, bool, error) {
	val, err := s.client.HGet(ctx, s.turnsKey(), key).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get turn index from redis: %w", err)
	}

	turn, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt turn index for %q: %w", key, err)
	}
	return turn, true, nil
}

// Reset removes both counter hashes.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.client.Del(ctx, s.visitsKey(), s.turnsKey()).Err(); err != nil {
		return fmt.Errorf("failed to reset counters: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
