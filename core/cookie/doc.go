// Package cookie provides HMAC-signed HTTP cookies and a request-scoped
// key-value store built on them.
//
// Values are base64url-encoded and signed with HMAC-SHA256. Multiple secrets
// enable key rotation: the first secret signs new cookies while all secrets
// verify inbound ones, so old cookies stay valid during a rotation window.
// Tampered or unknown signatures read as absent values, never as data.
//
//	mgr, err := cookie.New([]string{secret},
//		cookie.WithSecure(true),
//		cookie.WithSameSite(http.SameSiteLaxMode),
//	)
//
// The Scoped store adapts a manager to one request/response exchange and
// satisfies the request-scoped collaborator interface of core/authctx:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		auth := authSvc.Context(mgr.Scoped(w, r))
//		// ...
//	}
package cookie
