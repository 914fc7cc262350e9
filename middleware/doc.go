// Package middleware provides net/http middleware that wires the auth
// context into request handling.
//
// Authenticate installs a per-request authctx.Context backed by signed
// cookies; handlers retrieve it with GetAuthContext. RequireIdentity
// guards routes, either with a 401 or a redirect that remembers the
// requested URL for after sign-in.
//
//	mux := http.NewServeMux()
//	mux.Handle("/dashboard",
//		middleware.RequireIdentity[User]()(dashboardHandler))
//
//	handler := middleware.Authenticate[User](authService, cookieManager)(mux)
//	http.ListenAndServe(":8080", handler)
package middleware
