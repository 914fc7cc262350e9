package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// DefaultLength is the number of random bytes per token (256 bits of entropy).
const DefaultLength = 32

// minLength guards against configurations that would make tokens guessable.
const minLength = 16

var (
	// ErrGeneration is returned when the system's entropy source fails.
	ErrGeneration = errors.New("failed to generate token")
	// ErrLengthTooShort is returned when the configured byte length is below
	// the minimum required for an unguessable identifier.
	ErrLengthTooShort = errors.New("token length must be at least 16 bytes")
)

// Generator produces cryptographically secure random tokens encoded as
// URL-safe base64 without padding. Tokens double as session identifiers and
// bearer credentials, so the value space must be large enough that a
// collision or a successful guess is astronomically unlikely.
//
// Generator is stateless and safe for concurrent use.
type Generator struct {
	length int
}

// Option configures a Generator.
type Option func(*Generator)

// WithLength sets the number of random bytes per token.
func WithLength(n int) Option {
	return func(g *Generator) {
		g.length = n
	}
}

// New creates a token generator. Without options it produces 32-byte
// (43-character) tokens.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{length: DefaultLength}
	for _, opt := range opts {
		opt(g)
	}
	if g.length < minLength {
		return nil, ErrLengthTooShort
	}
	return g, nil
}

// Must creates a token generator and panics on invalid configuration.
// Useful for package-level defaults where the length is a constant.
func Must(opts ...Option) *Generator {
	g, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Generate returns a new random token. It never returns a previously issued
// value in practice; a collision detected at insertion time is an integrity
// failure on the caller's side, not a condition to retry.
func (g *Generator) Generate() (string, error) {
	b := make([]byte, g.length)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
