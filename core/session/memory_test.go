package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passwordless/core/session"
)

func TestMemoryStore_Create(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	ctx := context.Background()

	sess := freshSession("tok", userRef())
	require.NoError(t, store.Create(ctx, sess))

	t.Run("duplicate id rejected", func(t *testing.T) {
		require.ErrorIs(t, store.Create(ctx, sess), session.ErrDuplicateID)
	})

	t.Run("round trip", func(t *testing.T) {
		got, err := store.Get(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, sess.Authenticatable, got.Authenticatable)
		assert.True(t, got.ClaimedAt.IsZero())
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		require.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestMemoryStore_MarkClaimed(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, freshSession("tok", userRef())))

	at := time.Now()
	require.NoError(t, store.MarkClaimed(ctx, "tok", at))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, got.IsClaimed())
	assert.WithinDuration(t, at, got.ClaimedAt, time.Millisecond)

	// ClaimedAt is write-once.
	require.ErrorIs(t, store.MarkClaimed(ctx, "tok", time.Now()), session.ErrClaimConflict)

	later, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, got.ClaimedAt, later.ClaimedAt)

	require.ErrorIs(t, store.MarkClaimed(ctx, "missing", at), session.ErrNotFound)
}

func TestMemoryStore_DeleteByAuthenticatable(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	ctx := context.Background()

	ref := userRef()
	other := userRef()
	require.NoError(t, store.Create(ctx, freshSession("a", ref)))
	require.NoError(t, store.Create(ctx, freshSession("b", ref)))
	require.NoError(t, store.Create(ctx, freshSession("c", other)))

	require.NoError(t, store.DeleteByAuthenticatable(ctx, ref))

	_, err := store.Get(ctx, "a")
	require.ErrorIs(t, err, session.ErrNotFound)
	_, err = store.Get(ctx, "b")
	require.ErrorIs(t, err, session.ErrNotFound)
	_, err = store.Get(ctx, "c")
	require.NoError(t, err)
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, freshSession("fresh", userRef())))
	require.NoError(t, store.Create(ctx, expiredSession("stale", userRef())))

	deleted, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, "fresh")
	require.NoError(t, err)
}
