// Package passwordless implements magic-link ("passwordless") authentication:
// a server issues a short-lived, single-use session token bound to an identity,
// the user redeems it once to establish an authenticated session, and
// subsequent requests are authenticated by the session identifier the client
// holds in a signed cookie or any other request-scoped store.
//
// The module is composed of small, independently usable packages:
//
//   - core/token: cryptographically secure token generation
//   - core/session: the session entity, store contract and lifecycle engine
//     (issuance, expiry, atomic single-use claim)
//   - core/authctx: per-request authentication context resolving the current
//     identity, with sign-in/sign-out transitions and redirect bookkeeping
//   - core/cookie: HMAC-signed cookie store usable as the request-scoped
//     key-value collaborator
//   - core/magiclink: glue that issues a session and emails the claim link
//   - core/email: email sender contract with a development file sender
//   - integration/database/{pg,redis,mongo}: durable session stores
//   - integration/email/{postmark,smtp}: production email senders
//   - middleware: net/http middleware exposing the authentication context
//
// See the package documentation of core/session and core/authctx for the
// protocol details and guarantees.
package passwordless
