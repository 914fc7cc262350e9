package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
)

// minSecretLength keeps the HMAC key space large enough to resist brute force.
const minSecretLength = 32

// Manager signs and verifies HTTP cookie values with HMAC-SHA256.
// Multiple secrets support key rotation: the first secret signs new values,
// every secret is tried during verification.
//
// Manager is immutable after construction and safe for concurrent use.
type Manager struct {
	secrets  []string
	defaults Options
}

// New creates a cookie manager. At least one secret of 32+ characters is
// required.
func New(secrets []string, opts ...Option) (*Manager, error) {
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}
	for _, s := range secrets {
		if len(s) < minSecretLength {
			return nil, ErrSecretTooShort
		}
	}

	defaults := defaultOptions()
	for _, opt := range opts {
		opt(&defaults)
	}

	return &Manager{
		secrets:  secrets,
		defaults: defaults,
	}, nil
}

// Set writes a signed cookie to the response.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	o := m.defaults
	for _, opt := range opts {
		opt(&o)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    m.sign(value),
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HTTPOnly,
		SameSite: o.SameSite,
	})
}

// Get reads a cookie from the request and verifies its signature.
// Returns ErrCookieNotFound if absent, ErrInvalidSignature if the value was
// tampered with or signed by an unknown secret.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", ErrCookieNotFound
	}
	return m.verify(c.Value)
}

// Delete expires the cookie on the client.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HTTPOnly,
		SameSite: m.defaults.SameSite,
	})
}

// sign encodes value as base64url and appends a signature over the encoded
// payload, separated by a dot.
func (m *Manager) sign(value string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(value))
	return payload + "." + m.signature(payload, m.secrets[0])
}

// verify checks the signature against every configured secret and returns
// the decoded payload.
func (m *Manager) verify(raw string) (string, error) {
	payload, sig, found := strings.Cut(raw, ".")
	if !found {
		return "", ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		if hmac.Equal([]byte(sig), []byte(m.signature(payload, secret))) {
			decoded, err := base64.RawURLEncoding.DecodeString(payload)
			if err != nil {
				return "", ErrInvalidFormat
			}
			return string(decoded), nil
		}
	}
	return "", ErrInvalidSignature
}

func (m *Manager) signature(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
