package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// identityHashLen truncates identity digests. 16 hex characters (64 bits)
// is enough to correlate events from the same caller without keeping a
// full reversible-by-lookup digest of the credential.
const identityHashLen = 16

// HashIdentity returns the one-way digest stored in place of raw caller
// identity material. Empty input produces an empty digest.
func HashIdentity(identity string) string {
	if identity == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(sum[:])[:identityHashLen]
}

// ComputeHash returns the chain hash for ev: SHA-256 over the canonical
// serialization of the hashed fields concatenated with ev.PreviousHash.
//
// Canonical form is JSON with sorted keys (encoding/json sorts map keys),
// with the timestamp rendered as RFC 3339 with nanoseconds in UTC. Seq
// and Hash itself are excluded: Seq is a storage artifact and including
// it would tie verification to the storage engine's numbering.
func ComputeHash(ev *Event) string {
	payload := map[string]any{
		"timestamp":     ev.Timestamp.UTC().Format(time.RFC3339Nano),
		"event_type":    ev.EventType,
		"session_id":    ev.SessionID,
		"profile":       ev.Profile,
		"identity_hash": ev.IdentityHash,
		"metadata":      ev.Metadata,
	}

	// Marshal of map[string]any cannot fail for these value types.
	canonical, _ := json.Marshal(payload)

	input := canonical
	if ev.PreviousHash != "" {
		input = append([]byte(ev.PreviousHash+":"), canonical...)
	}

	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}
