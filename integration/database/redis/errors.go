package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned when the connection URL is empty.
	ErrEmptyConnectionURL = errors.New("redis: empty connection url")
	// ErrFailedToParseURL is returned when the connection URL is malformed.
	ErrFailedToParseURL = errors.New("redis: failed to parse connection url")
	// ErrNotReady is returned when the server does not answer pings.
	ErrNotReady = errors.New("redis: server not ready")
	// ErrMalformedRecord is returned when a stored session cannot be decoded.
	ErrMalformedRecord = errors.New("redis: malformed session record")
)
