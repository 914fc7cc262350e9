package session_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/passwordless/core/session"
)

func TestRef(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ref := session.NewRef("user", id)

	assert.False(t, ref.IsZero())
	assert.Equal(t, "user:"+id.String(), ref.String())
	assert.True(t, session.Ref{}.IsZero())
}

func TestSession_IsExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.False(t, session.Session{ExpiresAt: now.Add(time.Minute)}.IsExpired())
	assert.True(t, session.Session{ExpiresAt: now.Add(-time.Minute)}.IsExpired())
}

func TestSession_IsClaimed(t *testing.T) {
	t.Parallel()

	assert.False(t, session.Session{}.IsClaimed())
	assert.True(t, session.Session{ClaimedAt: time.Now()}.IsClaimed())
}
