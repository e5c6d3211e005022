// Package audit implements the mediator's tamper-evident, append-only
// event log.
//
// # Hash Chain
//
// Every event's hash is a SHA-256 digest over a canonical (sorted-key)
// JSON serialization of its fields concatenated with the previous
// event's hash. The first event has an empty previous hash. The result
// is a singly-linked hash chain from the first record to the last:
// mutating any stored field of any record breaks the chain from that
// record onward.
//
// Appends are serialized by a single mutex inside Chain so no two
// writers can observe the same tail hash and fork the chain. A failed
// append is a hard error for the caller: an action that cannot be
// durably logged must not be treated as completed.
//
// # Verification
//
// VerifyEvents is a pure function over exported rows, independent of the
// storage engine's own integrity features, so an offline auditor can
// re-derive the result from raw rows alone. Chain.VerifyIntegrity runs
// it against the live store, and Verifier re-runs it on a cron schedule.
//
// # Privacy
//
// Raw caller identity material is never stored. Append hashes the
// caller identity with a one-way digest before persisting.
package audit
