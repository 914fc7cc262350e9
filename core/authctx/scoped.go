package authctx

// ScopedStore is the request-scoped key-value collaborator where the session
// pointer and redirect location live. Implementations are expected to be
// tamper-resistant (e.g. server-signed cookies, see core/cookie) and visible
// only within a single request/response exchange.
type ScopedStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// MemoryScopedStore is a plain map-backed ScopedStore for tests and
// non-HTTP callers. Not safe for concurrent use; a scoped store belongs to
// exactly one request.
type MemoryScopedStore struct {
	values map[string]string
}

// NewMemoryScopedStore creates an empty in-memory scoped store.
func NewMemoryScopedStore() *MemoryScopedStore {
	return &MemoryScopedStore{values: make(map[string]string)}
}

// Get implements ScopedStore.
func (s *MemoryScopedStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set implements ScopedStore.
func (s *MemoryScopedStore) Set(key, value string) {
	s.values[key] = value
}

// Delete implements ScopedStore.
func (s *MemoryScopedStore) Delete(key string) {
	delete(s.values, key)
}
