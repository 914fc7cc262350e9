package authctx

import "errors"

var (
	// ErrMissingManager is returned when constructing a service without a
	// session manager.
	ErrMissingManager = errors.New("session manager is required")
	// ErrMissingResolver is returned when constructing a service without an
	// identity resolver.
	ErrMissingResolver = errors.New("identity resolver is required")
	// ErrMissingRefType is returned when constructing a service without an
	// identity class name.
	ErrMissingRefType = errors.New("identity reference type is required")

	// ErrIdentityMismatch is returned when a session references a different
	// identity class than the one this service authenticates.
	ErrIdentityMismatch = errors.New("session references a different identity class")
	// ErrIdentityNotFound is returned when a claimed session's identity
	// cannot be resolved to a concrete record.
	ErrIdentityNotFound = errors.New("identity not found")
)
