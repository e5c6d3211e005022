package audit

import (
	"context"
	"time"
)

// Well-known event types emitted by the mediator.
const (
	EventSessionCreated  = "session_created"
	EventSessionRevoked  = "session_revoked"
	EventContextProvided = "context_provided"
	EventAccessDenied    = "access_denied"
	EventAuditExported   = "audit_exported"
	EventTokenIssued     = "token_issued"
)

// Event is one immutable record in the audit chain. Events are never
// mutated or deleted once written.
type Event struct {
	// Seq is the monotonic sequence number assigned by storage on append.
	Seq int64 `json:"seq"`

	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	SessionID string    `json:"session_id,omitempty"`
	Profile   string    `json:"profile,omitempty"`

	// IdentityHash is the one-way digest of the caller identity. The raw
	// identity never reaches storage.
	IdentityHash string `json:"identity_hash,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`

	// Hash covers the canonical serialization of the fields above plus
	// PreviousHash. PreviousHash is empty only for the first record.
	Hash         string `json:"hash"`
	PreviousHash string `json:"previous_hash,omitempty"`
}

// Entry is the caller-supplied input to Chain.Append.
type Entry struct {
	EventType string
	SessionID string
	Profile   string

	// CallerIdentity is raw identity material (a bearer token). Append
	// digests it; it is never persisted as-is.
	CallerIdentity string

	Metadata map[string]any
}

// Storage is the durable append-only log behind a Chain.
//
// Implementations must make Append atomic (a torn append must not leave
// a partial row) and must return events from Scan and Since in insertion
// order. Chain serializes the tail-read-then-append sequence; Storage
// does not need to.
type Storage interface {
	// Append persists the event and assigns Seq.
	Append(ctx context.Context, ev *Event) error

	// TailHash returns the hash of the most recent event, or "" when the
	// log is empty.
	TailHash(ctx context.Context) (string, error)

	// Scan returns every event in insertion order.
	Scan(ctx context.Context) ([]*Event, error)

	// Since returns events with Timestamp >= cutoff in insertion order.
	Since(ctx context.Context, cutoff time.Time) ([]*Event, error)

	Close() error
}
