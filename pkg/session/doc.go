// Package session manages time-boxed mediator sessions.
//
// # Lifecycle
//
// A session moves through two one-way transitions:
//
//	ACTIVE -> EXPIRED   derived from expires_at, never written
//	ACTIVE -> REVOKED   explicit, terminal
//
// Sessions are soft-revoked: the revoked flag flips once and the row is
// never physically deleted, so the audit trail can always be joined back
// to the session it references. Expiry is the caller's check (compare
// ExpiresAt against now); the store does not auto-purge.
//
// # TTL Bounds
//
// Create clamps the requested TTL to [MinTTLMinutes, MaxTTLMinutes]
// (1 to 1440 by default) and falls back to the policy default when the
// caller requests none.
package session
