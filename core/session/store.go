package session

import (
	"context"
	"time"
)

// Store is the persistence contract for session records.
// Implementations must handle concurrent access safely; in particular
// MarkClaimed must be an atomic compare-and-set so that two concurrent
// claims of the same session cannot both succeed.
type Store interface {
	// Create persists a new session. Returns ErrDuplicateID if a session
	// with the same ID already exists; callers treat that as a fatal
	// integrity error, never a retried condition.
	Create(ctx context.Context, sess Session) error

	// Get returns the session with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (Session, error)

	// MarkClaimed sets ClaimedAt exactly once, atomically. Returns
	// ErrClaimConflict if the session is already claimed (a concurrent
	// claim won the race) and ErrNotFound if no such session exists.
	MarkClaimed(ctx context.Context, id string, at time.Time) error

	// DeleteByAuthenticatable removes all sessions issued to the given
	// identity. Used for administrative sign-out-everywhere.
	DeleteByAuthenticatable(ctx context.Context, ref Ref) error

	// DeleteExpired removes sessions past their deadline and returns the
	// count of deleted records. Cleanup policy is the caller's concern;
	// the lifecycle engine itself never deletes sessions.
	DeleteExpired(ctx context.Context) (int64, error)
}
