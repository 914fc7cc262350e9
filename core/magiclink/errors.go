package magiclink

import "errors"

var (
	// ErrMissingManager is returned when constructing a service without a
	// session manager.
	ErrMissingManager = errors.New("session manager is required")
	// ErrMissingSender is returned when constructing a service without an
	// email sender.
	ErrMissingSender = errors.New("email sender is required")
	// ErrInvalidConfig indicates incomplete or malformed configuration.
	ErrInvalidConfig = errors.New("invalid magic link configuration")
	// ErrRenderBody indicates the email body template failed to execute.
	ErrRenderBody = errors.New("failed to render email body")
)
