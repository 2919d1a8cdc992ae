package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validate/pkg/store"
	"github.com/dmitrymomot/validate/pkg/validator"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	runStoreSuite(t, store.NewMemoryStore(10), "mem-")
}

func TestMemoryStore_CopiesRecords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.NewMemoryStore(10)

	rec := newRecord("copy")
	require.NoError(t, s.Save(ctx, rec))
	rec.Fields[0].Name = "mutated"

	got, err := s.Get(ctx, "copy")
	require.NoError(t, err)
	assert.Equal(t, "email", got.Fields[0].Name)

	got.Fields[0].Name = "mutated again"
	again, err := s.Get(ctx, "copy")
	require.NoError(t, err)
	assert.Equal(t, "email", again.Fields[0].Name)
}

func TestMemoryStore_Eviction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.NewMemoryStore(2)

	require.NoError(t, s.Save(ctx, newRecord("a")))
	require.NoError(t, s.Save(ctx, newRecord("b")))

	// touch "a" so "b" becomes the oldest
	_, err := s.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, newRecord("c")))
	assert.Equal(t, 2, s.Len())

	_, err = s.Get(ctx, "b")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Get(ctx, "a")
	require.NoError(t, err)
	_, err = s.Get(ctx, "c")
	require.NoError(t, err)
}

func TestMemoryStore_TTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var mu sync.Mutex
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	s := store.NewMemoryStore(10, store.WithTTL(time.Minute), store.WithClock(clock))
	require.NoError(t, s.Save(ctx, newRecord("ttl")))

	advance(30 * time.Second)
	_, err := s.Get(ctx, "ttl")
	require.NoError(t, err)

	// saving again refreshes the expiry
	require.NoError(t, s.Save(ctx, newRecord("ttl")))
	advance(45 * time.Second)
	_, err = s.Get(ctx, "ttl")
	require.NoError(t, err)

	advance(time.Minute)
	_, err = s.Get(ctx, "ttl")
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_DefaultCapacity(t *testing.T) {
	t.Parallel()
	s := store.NewMemoryStore(0)
	require.NoError(t, s.Save(context.Background(), &store.Record{ID: "x", State: validator.State{}}))
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.NewMemoryStore(5)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%8))
			_ = s.Save(ctx, newRecord(id))
			_, _ = s.Get(ctx, id)
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, s.Len(), 5)
}
