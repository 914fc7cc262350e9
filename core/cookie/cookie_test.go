package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passwordless/core/cookie"
)

const (
	testSecret    = "0123456789abcdef0123456789abcdef"
	rotatedSecret = "fedcba9876543210fedcba9876543210"
)

func newManager(t *testing.T, secrets ...string) *cookie.Manager {
	t.Helper()
	if len(secrets) == 0 {
		secrets = []string{testSecret}
	}
	mgr, err := cookie.New(secrets)
	require.NoError(t, err)
	return mgr
}

// requestWithCookies replays cookies set on a recorder into a new request.
func requestWithCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New(nil)
		require.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("rejects short secrets", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New([]string{"short"})
		require.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestManager_SignRoundTrip(t *testing.T) {
	t.Parallel()

	mgr := newManager(t)

	rec := httptest.NewRecorder()
	mgr.Set(rec, "session", "token-value")

	got, err := mgr.Get(requestWithCookies(t, rec), "session")
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)
}

func TestManager_Get(t *testing.T) {
	t.Parallel()

	mgr := newManager(t)

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := mgr.Get(r, "session")
		require.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		mgr.Set(rec, "session", "token-value")

		c := rec.Result().Cookies()[0]
		payload, sig, _ := strings.Cut(c.Value, ".")
		c.Value = payload + "x." + sig

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)

		_, err := mgr.Get(r, "session")
		require.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: "no-separator"})

		_, err := mgr.Get(r, "session")
		require.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("unknown signing key", func(t *testing.T) {
		t.Parallel()

		other := newManager(t, rotatedSecret)
		rec := httptest.NewRecorder()
		other.Set(rec, "session", "token-value")

		_, err := mgr.Get(requestWithCookies(t, rec), "session")
		require.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})
}

func TestManager_KeyRotation(t *testing.T) {
	t.Parallel()

	old := newManager(t, rotatedSecret)
	rec := httptest.NewRecorder()
	old.Set(rec, "session", "token-value")

	// New deployment signs with a fresh secret but still verifies the old one.
	rotated := newManager(t, testSecret, rotatedSecret)
	got, err := rotated.Get(requestWithCookies(t, rec), "session")
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	mgr := newManager(t)

	rec := httptest.NewRecorder()
	mgr.Delete(rec, "session")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("parses secret list", func(t *testing.T) {
		t.Parallel()

		mgr, err := cookie.NewFromConfig(cookie.Config{
			Secrets: testSecret + ", " + rotatedSecret + ",",
			Path:    "/",
		})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		mgr.Set(rec, "session", "v")
		_, err = mgr.Get(requestWithCookies(t, rec), "session")
		require.NoError(t, err)
	})

	t.Run("empty secrets fail", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.NewFromConfig(cookie.Config{Secrets: " , "})
		require.ErrorIs(t, err, cookie.ErrNoSecret)
	})
}
