// Package token generates cryptographically secure random identifiers used
// as session tokens.
//
// Tokens are drawn from crypto/rand and encoded as URL-safe base64 without
// padding, making them usable directly in magic-link URLs and cookie values.
// The default of 32 random bytes yields 256 bits of entropy.
//
// Usage:
//
//	gen := token.Must()
//	tok, err := gen.Generate()
//	if err != nil {
//		// entropy source failure, treat as fatal
//	}
package token
