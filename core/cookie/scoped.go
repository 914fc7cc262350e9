package cookie

import "net/http"

// Scoped is a request-bound key-value store over signed cookies. It
// implements the ScopedStore collaborator expected by core/authctx: values
// written during the request are immediately visible to later reads within
// the same request, and invalid or tampered cookies read as absent.
//
// A Scoped instance belongs to exactly one request and must not be shared.
type Scoped struct {
	mgr  *Manager
	w    http.ResponseWriter
	r    *http.Request
	opts []Option

	// overlay tracks writes and deletes made during this request;
	// a nil entry marks a deletion.
	overlay map[string]*string
}

// Scoped binds the manager to one request/response exchange. The given
// options apply to every cookie written through the store.
func (m *Manager) Scoped(w http.ResponseWriter, r *http.Request, opts ...Option) *Scoped {
	return &Scoped{
		mgr:     m,
		w:       w,
		r:       r,
		opts:    opts,
		overlay: make(map[string]*string),
	}
}

// Get returns the value for key, preferring writes made during this request
// over cookies carried by the inbound request.
func (s *Scoped) Get(key string) (string, bool) {
	if v, touched := s.overlay[key]; touched {
		if v == nil {
			return "", false
		}
		return *v, true
	}

	v, err := s.mgr.Get(s.r, key)
	if err != nil {
		return "", false
	}
	return v, true
}

// Set writes a signed cookie for key.
func (s *Scoped) Set(key, value string) {
	s.mgr.Set(s.w, key, value, s.opts...)
	s.overlay[key] = &value
}

// Delete expires the cookie for key.
func (s *Scoped) Delete(key string) {
	s.mgr.Delete(s.w, key)
	s.overlay[key] = nil
}
