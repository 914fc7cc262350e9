// Package magiclink ties session issuance to email delivery: it creates a
// claimable session through the lifecycle engine and sends the claim URL to
// the identity's email address.
//
//	svc, err := magiclink.New(mgr, sender, magiclink.Config{
//		BaseURL: "https://app.example.com",
//	})
//	sess, err := svc.RequestLink(ctx, session.NewRef("user", userID),
//		"user@example.com", prov)
//
// The emailed URL looks like
// https://app.example.com/auth/claim?token=<session id>; the handler behind
// that path redeems it with authctx.Context.SignInToken. Session tokens are
// never written to logs.
package magiclink
