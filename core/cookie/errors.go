package cookie

import "errors"

var (
	// ErrNoSecret indicates no signing secret was provided.
	ErrNoSecret = errors.New("no secret provided for cookie manager")
	// ErrSecretTooShort indicates a secret below the 32-character minimum.
	ErrSecretTooShort = errors.New("secret must be at least 32 characters long")
	// ErrInvalidSignature indicates signature verification failed,
	// suggesting tampering or an unknown signing key.
	ErrInvalidSignature = errors.New("cookie signature verification failed")
	// ErrInvalidFormat indicates the cookie value is not a payload.signature
	// pair or the payload is not valid base64.
	ErrInvalidFormat = errors.New("invalid cookie format")
	// ErrCookieNotFound indicates the requested cookie is absent from the
	// request.
	ErrCookieNotFound = errors.New("cookie not found in request")
)
