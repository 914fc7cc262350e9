package session

import "errors"

var (
	// ErrNotFound is returned by a Store when no session exists for an ID.
	ErrNotFound = errors.New("session not found")
	// ErrDuplicateID is returned by a Store when creating a session whose ID
	// is already taken. Token collisions are astronomically unlikely, so this
	// indicates a broken token generator or store corruption; it is fatal and
	// never retried.
	ErrDuplicateID = errors.New("session id already exists")
	// ErrClaimConflict is returned by a Store when the atomic claim update
	// finds the session already claimed. The lifecycle engine surfaces it as
	// ErrTokenAlreadyUsed since retrying can never succeed.
	ErrClaimConflict = errors.New("session claimed concurrently")

	// ErrInvalidToken is returned when no session exists for a presented
	// token. Callers should treat it exactly like an expired token to avoid
	// leaking which tokens exist.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrSessionTimedOut is returned when a session is past its deadline.
	// Terminal for that token.
	ErrSessionTimedOut = errors.New("session timed out")
	// ErrTokenAlreadyUsed is returned when single-use enforcement is on and
	// the token was already claimed. Terminal for that token. Kept distinct
	// from ErrSessionTimedOut so callers can message "this link was already
	// used" versus "this link expired".
	ErrTokenAlreadyUsed = errors.New("session token already used")

	// ErrInvalidReference is returned when issuing a session for an empty
	// identity reference.
	ErrInvalidReference = errors.New("invalid authenticatable reference")
	// ErrSaveSession is returned when persisting a session fails for reasons
	// other than a duplicate ID.
	ErrSaveSession = errors.New("failed to save session")
)
