package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/passwordless/core/token"
)

// Manager is the session lifecycle engine. It decides whether a session may
// be claimed, performs the single-use claim transition, and evaluates expiry.
//
// Sessions are never deleted here, even on failed claims: the record and its
// provenance are kept as an audit trail, and cleanup is an external concern
// (see Store.DeleteExpired).
type Manager struct {
	store  Store
	tokens *token.Generator
	cfg    Config
}

// ErrInvalidTimeout is returned when constructing a manager with a
// non-positive session timeout.
var ErrInvalidTimeout = errors.New("session timeout must be positive")

// NewManager creates a lifecycle engine backed by the given store.
// Without options sessions expire after 15 minutes and tokens are single-use.
func NewManager(store Store, opts ...Option) (*Manager, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewManagerFromConfig(store, cfg)
}

// NewManagerFromConfig creates a lifecycle engine from explicit configuration.
func NewManagerFromConfig(store Store, cfg Config) (*Manager, error) {
	if cfg.Timeout <= 0 {
		return nil, ErrInvalidTimeout
	}
	gen, err := token.New(token.WithLength(cfg.TokenLength))
	if err != nil {
		return nil, err
	}
	return &Manager{
		store:  store,
		tokens: gen,
		cfg:    cfg,
	}, nil
}

// Timeout returns the configured claim deadline for new sessions.
func (m *Manager) Timeout() time.Duration {
	return m.cfg.Timeout
}

// RestrictsTokenReuse reports whether single-use enforcement is on.
func (m *Manager) RestrictsTokenReuse() bool {
	return m.cfg.RestrictTokenReuse
}

// Issue creates and persists a new session for the given identity reference.
// The caller delivers the session ID to the user out-of-band, typically as a
// magic link.
func (m *Manager) Issue(ctx context.Context, ref Ref, prov Provenance) (Session, error) {
	if ref.IsZero() {
		return Session{}, ErrInvalidReference
	}

	id, err := m.tokens.Generate()
	if err != nil {
		return Session{}, err
	}

	now := time.Now()
	sess := Session{
		ID:              id,
		Authenticatable: ref,
		CreatedAt:       now,
		ExpiresAt:       now.Add(m.cfg.Timeout),
		RemoteAddr:      prov.RemoteAddr,
		UserAgent:       prov.UserAgent,
	}

	if err := m.store.Create(ctx, sess); err != nil {
		if errors.Is(err, ErrDuplicateID) {
			// A collision means the token space is broken; do not retry.
			return Session{}, err
		}
		return Session{}, errors.Join(ErrSaveSession, err)
	}

	return sess, nil
}

// Claim validates a presented token and performs the claim transition.
//
// Failure order is deliberate: expiry is checked before claim state so a
// session that raced past its deadline reports ErrSessionTimedOut stably,
// regardless of whether it was also claimed. When single-use enforcement is
// on, the claim is an atomic compare-and-set against the store; of two
// concurrent claims exactly one wins and the other observes
// ErrTokenAlreadyUsed. All failures are terminal for the token.
func (m *Manager) Claim(ctx context.Context, id string) (Session, error) {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidToken
		}
		return Session{}, err
	}

	if sess.IsExpired() {
		return Session{}, ErrSessionTimedOut
	}

	if m.cfg.RestrictTokenReuse {
		if sess.IsClaimed() {
			return Session{}, ErrTokenAlreadyUsed
		}

		at := time.Now()
		if err := m.store.MarkClaimed(ctx, id, at); err != nil {
			if errors.Is(err, ErrClaimConflict) {
				// Another claim landed between Get and MarkClaimed.
				// Retrying can never succeed, so surface as already used.
				return Session{}, ErrTokenAlreadyUsed
			}
			if errors.Is(err, ErrNotFound) {
				return Session{}, ErrInvalidToken
			}
			return Session{}, err
		}
		sess.ClaimedAt = at
	}

	return sess, nil
}

// Authenticate confirms that an already established session is still valid.
// Unlike Claim it never mutates state: it only verifies that the session
// exists and has not expired. Used on every request after the original
// sign-in moment.
func (m *Manager) Authenticate(ctx context.Context, id string) (Session, error) {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidToken
		}
		return Session{}, err
	}

	if sess.IsExpired() {
		return Session{}, ErrSessionTimedOut
	}

	return sess, nil
}

// RevokeAll deletes every session issued to the given identity.
// Administrative sign-out-everywhere; not part of the claim protocol.
func (m *Manager) RevokeAll(ctx context.Context, ref Ref) error {
	if ref.IsZero() {
		return ErrInvalidReference
	}
	return m.store.DeleteByAuthenticatable(ctx, ref)
}

// CleanupExpired removes expired sessions from the store and returns the
// number of deleted records. Intended to be called from a periodic sweep.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}
