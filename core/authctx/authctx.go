package authctx

import (
	"context"
	"errors"

	"github.com/dmitrymomot/passwordless/core/session"
)

// Resolver resolves an opaque identity reference back to a concrete record.
type Resolver[Identity any] interface {
	FindByRef(ctx context.Context, ref session.Ref) (Identity, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc[Identity any] func(ctx context.Context, ref session.Ref) (Identity, error)

// FindByRef implements Resolver.
func (f ResolverFunc[Identity]) FindByRef(ctx context.Context, ref session.Ref) (Identity, error) {
	return f(ctx, ref)
}

// Service holds the long-lived configuration for one identity class: the
// lifecycle engine, the resolver, and the scoped-store key names derived from
// the identity type. It is injected wherever authentication is needed, so
// multiple identity classes (users, admins) coexist safely in concurrent
// request handling; there is no process-wide singleton.
type Service[Identity any] struct {
	manager    *session.Manager
	resolver   Resolver[Identity]
	refType    string
	strategies []Strategy[Identity]
	legacyKey  string
}

// ServiceOption configures a Service.
type ServiceOption[Identity any] func(*Service[Identity])

// WithLegacyCookieCredential enables the deprecated out-of-band credential
// path: a scoped-store value under key holding the identity's primary key
// directly. Resolution falls back to it when no session pointer is present,
// and SignOut purges it.
//
// Deprecated: exists only to keep old clients signed in during migration.
func WithLegacyCookieCredential[Identity any](key string) ServiceOption[Identity] {
	return func(s *Service[Identity]) {
		s.legacyKey = key
	}
}

// NewService creates the authentication service for one identity class.
// refType names the class (e.g. "user") and must match the Ref.Type of the
// sessions this service accepts.
func NewService[Identity any](mgr *session.Manager, resolver Resolver[Identity], refType string, opts ...ServiceOption[Identity]) (*Service[Identity], error) {
	if mgr == nil {
		return nil, ErrMissingManager
	}
	if resolver == nil {
		return nil, ErrMissingResolver
	}
	if refType == "" {
		return nil, ErrMissingRefType
	}

	s := &Service[Identity]{
		manager:  mgr,
		resolver: resolver,
		refType:  refType,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.strategies = []Strategy[Identity]{&sessionStrategy[Identity]{svc: s}}
	if s.legacyKey != "" {
		s.strategies = append(s.strategies, &LegacyCookieStrategy[Identity]{
			Key:      s.legacyKey,
			Resolver: s.resolver,
			RefType:  s.refType,
		})
	}

	return s, nil
}

// sessionKey is the scoped-store key holding the session pointer for this
// identity class.
func (s *Service[Identity]) sessionKey() string {
	return "passwordless_session--" + s.refType
}

// redirectKey is the scoped-store key holding the post-login redirect
// location for this identity class.
func (s *Service[Identity]) redirectKey() string {
	return "passwordless_redirect--" + s.refType
}

// Context binds the service to one request's scoped store. The returned
// Context memoizes identity resolution for the duration of the request and
// must not be shared across requests.
func (s *Service[Identity]) Context(kv ScopedStore) *Context[Identity] {
	return &Context[Identity]{svc: s, kv: kv}
}

// Context is the per-request authentication facade: it resolves the current
// identity from the session pointer held in the request-scoped store and
// exposes the sign-in/sign-out transitions.
type Context[Identity any] struct {
	svc *Service[Identity]
	kv  ScopedStore

	// memoized resolution result, valid for this request only
	resolved bool
	identity Identity
	ok       bool
}

// CurrentIdentity resolves the identity bound to this request, memoized per
// request. It returns false when no session pointer is present or the
// referenced session is invalid (expired, unknown). It never claims: the
// claim happened once, at the original sign-in moment.
func (c *Context[Identity]) CurrentIdentity(ctx context.Context) (Identity, bool) {
	if c.resolved {
		return c.identity, c.ok
	}

	c.resolved = true
	for _, strat := range c.svc.strategies {
		identity, ok, err := strat.Resolve(ctx, c.kv)
		if err != nil || !ok {
			continue
		}
		c.identity, c.ok = identity, true
		return c.identity, true
	}

	var zero Identity
	c.identity, c.ok = zero, false
	return zero, false
}

// SignIn establishes an authenticated session from an issued (or freshly
// created) session record. Any session pointer already held by the caller is
// invalidated first, so a new login supersedes an old one instead of stacking
// (prevents session fixation). The claim transition runs through the
// lifecycle engine: a timed-out session fails with session.ErrSessionTimedOut
// and, with single-use enforcement on, a reused token fails with
// session.ErrTokenAlreadyUsed.
func (c *Context[Identity]) SignIn(ctx context.Context, sess session.Session) error {
	c.SignOut(ctx)

	if sess.Authenticatable.Type != c.svc.refType {
		return ErrIdentityMismatch
	}

	claimed, err := c.svc.manager.Claim(ctx, sess.ID)
	if err != nil {
		return err
	}

	c.bind(claimed.ID)
	return nil
}

// SignInToken claims a raw presented token (from a magic link), binds the
// session to this request and returns the resolved identity.
func (c *Context[Identity]) SignInToken(ctx context.Context, tok string) (Identity, error) {
	var zero Identity

	c.SignOut(ctx)

	claimed, err := c.svc.manager.Claim(ctx, tok)
	if err != nil {
		return zero, err
	}
	if claimed.Authenticatable.Type != c.svc.refType {
		return zero, ErrIdentityMismatch
	}

	identity, err := c.svc.resolver.FindByRef(ctx, claimed.Authenticatable)
	if err != nil {
		return zero, errors.Join(ErrIdentityNotFound, err)
	}

	c.bind(claimed.ID)
	c.identity, c.ok, c.resolved = identity, true, true
	return identity, nil
}

// SignOut clears the session pointer and, when configured, the deprecated
// legacy credential. Idempotent: signing out while signed out is a no-op,
// never an error.
func (c *Context[Identity]) SignOut(_ context.Context) {
	c.kv.Delete(c.svc.sessionKey())
	if c.svc.legacyKey != "" {
		c.kv.Delete(c.svc.legacyKey)
	}

	var zero Identity
	c.identity, c.ok, c.resolved = zero, false, true
}

// bind writes the session pointer and invalidates the memoized resolution so
// the next CurrentIdentity call re-resolves.
func (c *Context[Identity]) bind(id string) {
	c.kv.Set(c.svc.sessionKey(), id)
	c.resolved = false
}

// SaveRedirectLocation remembers where to send the user after a successful
// authentication.
func (c *Context[Identity]) SaveRedirectLocation(url string) {
	c.kv.Set(c.svc.redirectKey(), url)
}

// ConsumeRedirectLocation returns the saved redirect location and removes it.
func (c *Context[Identity]) ConsumeRedirectLocation() (string, bool) {
	url, ok := c.kv.Get(c.svc.redirectKey())
	if !ok {
		return "", false
	}
	c.kv.Delete(c.svc.redirectKey())
	return url, true
}
