// Package auth is the authentication and authorization core of the school
// management backend.
//
// Sessions:
//   - Locally issued sessions are compact signed tokens (base64url payload +
//     HMAC-SHA256 signature) carried in the bc_session cookie. They are
//     stateless; there is no server-side session store. TokenCodec issues and
//     verifies them, CookieBuilder renders the transport attributes.
//   - Requests authenticated by the external identity provider carry the
//     provider's session JWT instead; provider adapters under provider/ verify
//     it and expose the external id plus profile metadata.
//
// Authorization:
//   - Resolver maps the request identity to an Actor: the role plus, for
//     teacher accounts, the concrete class ids and subject names the teacher
//     may act on. Actors are recomputed on every request and never cached, so
//     assignment changes take effect immediately.
//   - Unknown roles, missing teacher profiles, and absent identities all fail
//     closed into an Actor with no capabilities. Store outages surface as
//     retryable errors rather than silent denials or grants.
//
// Credentials:
//   - Passwords are stored as hex(salt):hex(key) scrypt records and compared
//     in constant time. See scrypt.go.
package auth
