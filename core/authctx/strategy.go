package authctx

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/passwordless/core/session"
)

// Strategy resolves an identity from a request's scoped store. Strategies
// share one capability interface so alternative credential paths can be
// added or removed without touching the claim logic.
type Strategy[Identity any] interface {
	Resolve(ctx context.Context, kv ScopedStore) (Identity, bool, error)
}

// sessionStrategy is the primary path: a session pointer in the scoped store
// referencing an already-claimed, still-valid session.
type sessionStrategy[Identity any] struct {
	svc *Service[Identity]
}

func (s *sessionStrategy[Identity]) Resolve(ctx context.Context, kv ScopedStore) (Identity, bool, error) {
	var zero Identity

	id, ok := kv.Get(s.svc.sessionKey())
	if !ok || id == "" {
		return zero, false, nil
	}

	sess, err := s.svc.manager.Authenticate(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrInvalidToken) || errors.Is(err, session.ErrSessionTimedOut) {
			return zero, false, nil
		}
		return zero, false, err
	}

	if sess.Authenticatable.Type != s.svc.refType {
		return zero, false, nil
	}

	identity, err := s.svc.resolver.FindByRef(ctx, sess.Authenticatable)
	if err != nil {
		return zero, false, nil
	}
	return identity, true, nil
}

// LegacyCookieStrategy resolves the deprecated out-of-band credential: a
// scoped-store value holding the identity's primary key directly, with no
// session record behind it.
//
// Deprecated: kept behind the Strategy interface so it can be deleted
// independently of the session claim logic once old clients are migrated.
type LegacyCookieStrategy[Identity any] struct {
	Key      string
	Resolver Resolver[Identity]
	RefType  string
}

func (s *LegacyCookieStrategy[Identity]) Resolve(ctx context.Context, kv ScopedStore) (Identity, bool, error) {
	var zero Identity

	raw, ok := kv.Get(s.Key)
	if !ok || raw == "" {
		return zero, false, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return zero, false, nil
	}

	identity, err := s.Resolver.FindByRef(ctx, session.NewRef(s.RefType, id))
	if err != nil {
		return zero, false, nil
	}
	return identity, true, nil
}
