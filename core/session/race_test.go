package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passwordless/core/session"
)

// TestConcurrentClaim_ExactlyOneWinner verifies the single-use property under
// contention: N concurrent claims of the same token (the double-click /
// email-prefetch race) produce exactly one success, all others observe
// ErrTokenAlreadyUsed.
func TestConcurrentClaim_ExactlyOneWinner(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	mgr, err := session.NewManager(store, session.WithRestrictTokenReuse(true))
	require.NoError(t, err)

	sess, err := mgr.Issue(context.Background(), userRef(), session.Provenance{})
	require.NoError(t, err)

	const numClaims = 100
	results := make([]error, numClaims)

	var wg sync.WaitGroup
	wg.Add(numClaims)
	for i := range numClaims {
		go func(idx int) {
			defer wg.Done()
			_, err := mgr.Claim(context.Background(), sess.ID)
			results[idx] = err
		}(i)
	}
	wg.Wait()

	var wins, alreadyUsed int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, session.ErrTokenAlreadyUsed)
			alreadyUsed++
		}
	}

	assert.Equal(t, 1, wins, "exactly one claim must win")
	assert.Equal(t, numClaims-1, alreadyUsed)

	// The session record survives the failed claims for audit.
	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.True(t, got.IsClaimed())
}

// TestConcurrentClaim_ReuseAllowed verifies that with reuse restriction off
// every concurrent claim of a valid token succeeds.
func TestConcurrentClaim_ReuseAllowed(t *testing.T) {
	t.Parallel()

	mgr, err := session.NewManager(session.NewMemoryStore(), session.WithRestrictTokenReuse(false))
	require.NoError(t, err)

	sess, err := mgr.Issue(context.Background(), userRef(), session.Provenance{})
	require.NoError(t, err)

	const numClaims = 50
	var wg sync.WaitGroup
	wg.Add(numClaims)
	for range numClaims {
		go func() {
			defer wg.Done()
			_, err := mgr.Claim(context.Background(), sess.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

// TestConcurrentIssue_UniqueTokens verifies that concurrent issuance never
// produces colliding session IDs.
func TestConcurrentIssue_UniqueTokens(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	mgr, err := session.NewManager(store)
	require.NoError(t, err)

	const numSessions = 100
	ids := make([]string, numSessions)

	var wg sync.WaitGroup
	wg.Add(numSessions)
	for i := range numSessions {
		go func(idx int) {
			defer wg.Done()
			sess, err := mgr.Issue(context.Background(), userRef(), session.Provenance{})
			require.NoError(t, err)
			ids[idx] = sess.ID
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, numSessions)
	for _, id := range ids {
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate session id issued")
		seen[id] = true
	}
	assert.Equal(t, numSessions, store.Len())
}
