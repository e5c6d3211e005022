// Package export serializes audit events for external review.
//
// Exports are read-only over rows produced by the audit chain and keep
// every field needed to re-run verification offline (hash, previous
// hash, canonical timestamps). JSON is the lossless format; CSV is a
// flattened convenience view for spreadsheets.
package export
