// Package authctx provides the per-request authentication context for
// passwordless login: resolving "who is the current identity" from a session
// pointer held in a request-scoped store, and the sign-in/sign-out
// transitions around the session claim protocol.
//
// A Service[Identity] is configured once per identity class with the session
// lifecycle engine, an identity resolver and the class name; requests then
// get a short-lived Context bound to their scoped store:
//
//	svc, err := authctx.NewService(mgr,
//		authctx.ResolverFunc[User](findUser), "user")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// per request, kv typically backed by signed cookies (core/cookie)
//	auth := svc.Context(kv)
//
//	if user, ok := auth.CurrentIdentity(ctx); ok {
//		// authenticated
//	}
//
//	user, err := auth.SignInToken(ctx, tokenFromMagicLink)
//	auth.SignOut(ctx) // idempotent
//
// CurrentIdentity is memoized for the request and never claims a token; the
// claim happens exactly once, at the sign-in moment. Alternative credential
// paths (such as the deprecated legacy cookie credential) plug in behind the
// Strategy interface and can be removed without touching the claim logic.
package authctx
