package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validate/pkg/store"
	"github.com/dmitrymomot/validate/pkg/validator"
)

func newRecord(id string) *store.Record {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &store.Record{
		ID: id,
		Fields: []validator.FieldDescriptor{
			{Name: "email", Required: true, Type: "email"},
			{Name: "username", Min: "3"},
		},
		State: validator.NewState(map[string][]string{
			"email":    {"email is required"},
			"username": {},
		}),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// runStoreSuite checks the behaviour every Store implementation shares.
func runStoreSuite(t *testing.T, s store.Store, idPrefix string) {
	t.Helper()
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		rec := newRecord(idPrefix + "save")
		require.NoError(t, s.Save(ctx, rec))
		t.Cleanup(func() { _ = s.Delete(ctx, rec.ID) })

		got, err := s.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, rec.Fields, got.Fields)
		assert.Equal(t, rec.State.ErrorMessages(), got.State.ErrorMessages())
		assert.Equal(t, 1, got.State.ErrorCount())
		assert.False(t, got.State.AllValid())
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("save replaces", func(t *testing.T) {
		rec := newRecord(idPrefix + "replace")
		require.NoError(t, s.Save(ctx, rec))
		t.Cleanup(func() { _ = s.Delete(ctx, rec.ID) })

		rec.State = rec.State.Apply("email", nil)
		require.NoError(t, s.Save(ctx, rec))

		got, err := s.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.True(t, got.State.AllValid())
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := s.Get(ctx, idPrefix+"missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		rec := newRecord(idPrefix + "delete")
		require.NoError(t, s.Save(ctx, rec))

		require.NoError(t, s.Delete(ctx, rec.ID))
		_, err := s.Get(ctx, rec.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, s.Delete(ctx, rec.ID), store.ErrNotFound)
	})

	t.Run("invalid record", func(t *testing.T) {
		require.ErrorIs(t, s.Save(ctx, nil), store.ErrInvalidRecord)
		require.ErrorIs(t, s.Save(ctx, &store.Record{}), store.ErrInvalidRecord)
	})
}
