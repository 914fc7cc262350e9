package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passwordless/core/authctx"
	"github.com/dmitrymomot/passwordless/core/cookie"
	"github.com/dmitrymomot/passwordless/core/session"
	"github.com/dmitrymomot/passwordless/middleware"
)

type user struct {
	ID    uuid.UUID
	Email string
}

type env struct {
	manager *session.Manager
	service *authctx.Service[user]
	cookies *cookie.Manager
	user    user
}

func newEnv(t *testing.T) *env {
	t.Helper()

	mgr, err := session.NewManager(session.NewMemoryStore())
	require.NoError(t, err)

	u := user{ID: uuid.New(), Email: "alice@example.com"}
	resolver := authctx.ResolverFunc[user](func(_ context.Context, ref session.Ref) (user, error) {
		if ref.ID == u.ID {
			return u, nil
		}
		return user{}, fmt.Errorf("unknown user %s", ref.ID)
	})

	svc, err := authctx.NewService[user](mgr, resolver, "user")
	require.NoError(t, err)

	cookies, err := cookie.New([]string{strings.Repeat("s", 32)})
	require.NoError(t, err)

	return &env{manager: mgr, service: svc, cookies: cookies, user: u}
}

// signIn runs one request through the auth middleware that claims the given
// token and returns the cookies it set.
func (e *env) signIn(t *testing.T, token string) []*http.Cookie {
	t.Helper()

	handler := middleware.Authenticate[user](e.service, e.cookies)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth, ok := middleware.GetAuthContext[user](r.Context())
			require.True(t, ok)
			_, err := auth.SignInToken(r.Context(), token)
			require.NoError(t, err)
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/claim?token="+token, nil))
	return rec.Result().Cookies()
}

func TestAuthenticate_InstallsContext(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	var seen bool
	handler := middleware.Authenticate[user](e.service, e.cookies)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth, ok := middleware.GetAuthContext[user](r.Context())
			assert.True(t, ok)
			assert.NotNil(t, auth)

			_, found := auth.CurrentIdentity(r.Context())
			assert.False(t, found)
			seen = true
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, seen)
}

func TestAuthenticate_Skip(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	handler := middleware.AuthenticateWithConfig[user](e.service, e.cookies, middleware.AuthConfig{
		Skip: func(r *http.Request) bool { return r.URL.Path == "/health" },
	})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := middleware.GetAuthContext[user](r.Context())
			assert.False(t, ok)
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
}

func TestAuthenticate_SignInPersistsAcrossRequests(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	sess, err := e.manager.Issue(context.Background(), session.NewRef("user", e.user.ID), session.Provenance{})
	require.NoError(t, err)

	cookies := e.signIn(t, sess.ID)
	require.NotEmpty(t, cookies)

	var got user
	handler := middleware.Authenticate[user](e.service, e.cookies)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth, _ := middleware.GetAuthContext[user](r.Context())
			id, found := auth.CurrentIdentity(r.Context())
			require.True(t, found)
			got = id
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, e.user.Email, got.Email)
}

func TestRequireIdentity_RejectsAnonymous(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	handler := middleware.Authenticate[user](e.service, e.cookies)(
		middleware.RequireIdentity[user]()(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run for anonymous requests")
			}),
		),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireIdentity_RedirectSavesLocation(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	handler := middleware.Authenticate[user](e.service, e.cookies)(
		middleware.RequireIdentityWithConfig[user](middleware.RequireConfig{
			RedirectURL: "/signin",
		})(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run for anonymous requests")
			}),
		),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports?week=34", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signin", rec.Result().Header.Get("Location"))
	// The requested URL rides along in a cookie for post-sign-in redirect.
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestRequireIdentity_PassesAuthenticated(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	sess, err := e.manager.Issue(context.Background(), session.NewRef("user", e.user.ID), session.Provenance{})
	require.NoError(t, err)
	cookies := e.signIn(t, sess.ID)

	var ran bool
	handler := middleware.Authenticate[user](e.service, e.cookies)(
		middleware.RequireIdentity[user]()(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { ran = true }),
		),
	)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireIdentity_ExpiredSession(t *testing.T) {
	t.Parallel()

	mgr, err := session.NewManager(session.NewMemoryStore(), session.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	u := user{ID: uuid.New(), Email: "bob@example.com"}
	resolver := authctx.ResolverFunc[user](func(_ context.Context, _ session.Ref) (user, error) {
		return u, nil
	})
	svc, err := authctx.NewService[user](mgr, resolver, "user")
	require.NoError(t, err)
	cookies, err := cookie.New([]string{strings.Repeat("s", 32)})
	require.NoError(t, err)

	e := &env{manager: mgr, service: svc, cookies: cookies, user: u}

	sess, err := mgr.Issue(context.Background(), session.NewRef("user", u.ID), session.Provenance{})
	require.NoError(t, err)
	signedIn := e.signIn(t, sess.ID)

	time.Sleep(60 * time.Millisecond)

	// The session cookie is still present but the session has timed out.
	handler := middleware.Authenticate[user](svc, cookies)(
		middleware.RequireIdentity[user]()(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run with an expired session")
			}),
		),
	)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range signedIn {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProvenanceFromRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/auth/link", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("User-Agent", "test-agent/1.0")

	prov := middleware.ProvenanceFromRequest(req)
	assert.Equal(t, "203.0.113.7", prov.RemoteAddr)
	assert.Equal(t, "test-agent/1.0", prov.UserAgent)
}
