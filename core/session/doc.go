// Package session implements the session lifecycle at the heart of
// passwordless authentication: token issuance, expiry evaluation, and
// single-use claim enforcement.
//
// # Protocol
//
// A caller requests a session for an identity; the Manager generates an
// unguessable token, persists the record and hands it back. The token is
// delivered out-of-band (a magic link in an email). When the user presents
// it, Claim validates and redeems it:
//
//   - unknown token: ErrInvalidToken (indistinguishable from expired to
//     avoid leaking which tokens exist)
//   - past ExpiresAt: ErrSessionTimedOut, checked before claim state so the
//     error is stable even for sessions that raced past their deadline
//   - already claimed with single-use enforcement on: ErrTokenAlreadyUsed
//   - otherwise the claim is recorded atomically; of N concurrent claims of
//     the same token exactly one succeeds
//
// Every failure is terminal for that token. The engine never deletes
// sessions, keeping provenance for audit; cleanup is the caller's concern
// via Store.DeleteExpired.
//
// # Usage
//
//	store := session.NewMemoryStore() // or integration/database/{pg,redis,mongo}
//	mgr, err := session.NewManager(store,
//		session.WithTimeout(15*time.Minute),
//		session.WithRestrictTokenReuse(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err := mgr.Issue(ctx, session.NewRef("user", userID), session.Provenance{
//		RemoteAddr: r.RemoteAddr,
//		UserAgent:  r.UserAgent(),
//	})
//	// email a link containing sess.ID, then later:
//	sess, err = mgr.Claim(ctx, presentedToken)
//
// Subsequent requests validate the established session with
// Manager.Authenticate, which never mutates claim state.
package session
