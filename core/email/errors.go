package email

import "errors"

var (
	// ErrInvalidParams indicates the message fails validation before any
	// delivery attempt.
	ErrInvalidParams = errors.New("invalid email parameters")
	// ErrInvalidConfig indicates a sender was constructed with incomplete
	// configuration.
	ErrInvalidConfig = errors.New("invalid email sender configuration")
	// ErrFailedToSendEmail wraps delivery failures from the underlying
	// provider.
	ErrFailedToSendEmail = errors.New("failed to send email")
)
