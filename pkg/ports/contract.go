package ports

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCounterStoreContract runs a suite of tests to verify that a CounterStore
// implementation adheres to the defined interface contract.
// The store is Reset along the way, so pass a dedicated instance.
func RunCounterStoreContract(t *testing.T, store CounterStore) {
	ctx := context.Background()
	key := "contract.knot." + time.Now().Format("20060102150405")

	t.Run("Unknown key", func(t *testing.T) {
		count, err := store.VisitCount(ctx, key+".missing")
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		_, ok, err := store.TurnIndex(ctx, key+".missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Increment", func(t *testing.T) {
		n, err := store.IncrementVisits(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = store.IncrementVisits(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		count, err := store.VisitCount(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Turn index", func(t *testing.T) {
		require.NoError(t, store.SetTurnIndex(ctx, key, 0))
		turn, ok, err := store.TurnIndex(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, "turn 0 is a recorded turn")
		assert.Equal(t, 0, turn)

		require.NoError(t, store.SetTurnIndex(ctx, key, 7))
		turn, _, err = store.TurnIndex(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 7, turn)
	})

	t.Run("Concurrent increments", func(t *testing.T) {
		concurrentKey := key + ".concurrent"
		const workers = 20

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.IncrementVisits(ctx, concurrentKey)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		count, err := store.VisitCount(ctx, concurrentKey)
		require.NoError(t, err)
		assert.Equal(t, workers, count)
	})

	t.Run("Reset", func(t *testing.T) {
		require.NoError(t, store.Reset(ctx))

		count, err := store.VisitCount(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		_, ok, err := store.TurnIndex(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "Reset should clear turn indices")
	})
}
