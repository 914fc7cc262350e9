package mongo

import "errors"

var (
	// ErrEmptyConnectionURL is returned when the connection URL is empty.
	ErrEmptyConnectionURL = errors.New("mongo: empty connection url")
	// ErrFailedToConnectToMongo is returned when all retry attempts are exhausted.
	ErrFailedToConnectToMongo = errors.New("mongo: failed to connect")
	// ErrHealthcheckFailed is returned when the health check ping fails.
	ErrHealthcheckFailed = errors.New("mongo: healthcheck failed")
	// ErrMalformedDocument is returned when a stored session cannot be decoded.
	ErrMalformedDocument = errors.New("mongo: malformed session document")
)
