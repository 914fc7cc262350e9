package middleware

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/passwordless/core/authctx"
	"github.com/dmitrymomot/passwordless/core/cookie"
	"github.com/dmitrymomot/passwordless/core/session"
	"github.com/dmitrymomot/passwordless/pkg/clientip"
)

// authContextKey keys the per-request auth context. Unexported so callers
// go through GetAuthContext.
type authContextKey struct{}

// AuthConfig configures the Authenticate middleware.
type AuthConfig struct {
	// Skip disables the middleware for specific requests.
	Skip func(r *http.Request) bool
	// CookieOptions apply to every cookie the auth context writes.
	CookieOptions []cookie.Option
}

// Authenticate binds an auth context to every request: it scopes the cookie
// store to the request/response pair, attaches the service's Context to the
// request context, and hands off to the next handler. Identity resolution
// stays lazy; nothing is looked up until a handler asks.
func Authenticate[Identity any](svc *authctx.Service[Identity], cookies *cookie.Manager) func(http.Handler) http.Handler {
	return AuthenticateWithConfig[Identity](svc, cookies, AuthConfig{})
}

// AuthenticateWithConfig is Authenticate with custom configuration.
func AuthenticateWithConfig[Identity any](svc *authctx.Service[Identity], cookies *cookie.Manager, cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			scoped := cookies.Scoped(w, r, cfg.CookieOptions...)
			auth := svc.Context(scoped)

			ctx := context.WithValue(r.Context(), authContextKey{}, auth)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAuthContext retrieves the auth context installed by Authenticate.
func GetAuthContext[Identity any](ctx context.Context) (*authctx.Context[Identity], bool) {
	auth, ok := ctx.Value(authContextKey{}).(*authctx.Context[Identity])
	return auth, ok
}

// RequireConfig configures the RequireIdentity middleware.
type RequireConfig struct {
	// Skip disables the middleware for specific requests.
	Skip func(r *http.Request) bool
	// RedirectURL, when set, turns rejections into a redirect instead of a
	// bare 401. The requested URL is saved so sign-in can return to it.
	RedirectURL string
	// ErrorHandler overrides the rejection response entirely.
	ErrorHandler http.Handler
}

// RequireIdentity rejects requests that carry no resolvable identity.
// It must run below Authenticate.
func RequireIdentity[Identity any]() func(http.Handler) http.Handler {
	return RequireIdentityWithConfig[Identity](RequireConfig{})
}

// RequireIdentityWithConfig is RequireIdentity with custom configuration.
func RequireIdentityWithConfig[Identity any](cfg RequireConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			auth, ok := GetAuthContext[Identity](r.Context())
			if ok {
				if _, found := auth.CurrentIdentity(r.Context()); found {
					next.ServeHTTP(w, r)
					return
				}
			}

			switch {
			case cfg.ErrorHandler != nil:
				cfg.ErrorHandler.ServeHTTP(w, r)
			case cfg.RedirectURL != "":
				if ok {
					auth.SaveRedirectLocation(r.URL.RequestURI())
				}
				http.Redirect(w, r, cfg.RedirectURL, http.StatusSeeOther)
			default:
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			}
		})
	}
}

// ProvenanceFromRequest captures the request origin for session audit
// fields, resolving the client IP through proxy headers.
func ProvenanceFromRequest(r *http.Request) session.Provenance {
	return session.Provenance{
		RemoteAddr: clientip.GetIP(r),
		UserAgent:  r.UserAgent(),
	}
}
