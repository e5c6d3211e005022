package session

import (
	"context"
	"time"
)

// Session is one time-boxed grant of mediated access for a profile.
type Session struct {
	// ID is an opaque, unguessable token.
	ID        string    `json:"id"`
	Profile   string    `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// Revoked is the only field ever mutated after creation.
	Revoked bool `json:"revoked"`

	// OwnerTokenHash is the digest of the credential that created the
	// session. Raw credentials are never stored.
	OwnerTokenHash string `json:"owner_token_hash,omitempty"`
}

// Usable reports whether the session can authorize a request right now.
func (s *Session) Usable(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}

// Expired reports whether the session's TTL has elapsed.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store is the durable keeper of sessions.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get returns the session, or nil when it does not exist or has been
	// revoked. Expiry is the caller's check.
	Get(ctx context.Context, id string) (*Session, error)

	// Revoke durably flips the revoked flag. It returns false when the
	// session does not exist or is already revoked, true when a live
	// session was revoked by this call.
	Revoke(ctx context.Context, id string) (bool, error)

	Close() error
}
