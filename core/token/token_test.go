package token_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passwordless/core/token"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("default length", func(t *testing.T) {
		t.Parallel()

		gen, err := token.New()
		require.NoError(t, err)

		tok, err := gen.Generate()
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(tok)
		require.NoError(t, err)
		assert.Len(t, raw, token.DefaultLength)
	})

	t.Run("custom length", func(t *testing.T) {
		t.Parallel()

		gen, err := token.New(token.WithLength(24))
		require.NoError(t, err)

		tok, err := gen.Generate()
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(tok)
		require.NoError(t, err)
		assert.Len(t, raw, 24)
	})

	t.Run("rejects too short length", func(t *testing.T) {
		t.Parallel()

		_, err := token.New(token.WithLength(8))
		require.ErrorIs(t, err, token.ErrLengthTooShort)
	})
}

func TestMust(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		token.Must(token.WithLength(1))
	})
	assert.NotPanics(t, func() {
		token.Must()
	})
}

func TestGenerate_Uniqueness(t *testing.T) {
	t.Parallel()

	gen := token.Must()

	seen := make(map[string]bool)
	for range 1000 {
		tok, err := gen.Generate()
		require.NoError(t, err)
		require.False(t, seen[tok], "generated duplicate token")
		seen[tok] = true
	}
}
