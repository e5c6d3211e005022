// Package redact provides pattern- and profile-driven sanitization of
// personal content before it leaves the mediator.
//
// # Rule Registry
//
// The package maintains a fixed registry of named redaction rules, each a
// precompiled case-insensitive pattern paired with a replacement token:
//
//   - mask_credit_card: 16-digit card numbers -> [CREDIT_CARD]
//   - mask_ssn:         US social security numbers -> [SSN]
//   - mask_emails:      email addresses -> [EMAIL]
//   - drop_phone:       phone numbers -> [PHONE]
//   - drop_exact_address: street addresses -> [ADDRESS]
//   - mask_ip:          IPv4 addresses -> [IP_ADDRESS]
//
// Rules always run in registry order regardless of the order in which the
// caller names them, so overlapping matches resolve deterministically (a
// card number is consumed by mask_credit_card before drop_phone can see
// its digit groups).
//
// # Profile Passes
//
// After the named rules run, a secondary pass keyed on the profile runs
// unconditionally. The "work" pass masks dates of birth, age references,
// and family relationships. The "public" pass additionally masks bare
// numbers, capitalized words, and URLs. Profiles without a registered
// pass get no secondary treatment.
//
// # Error Policy
//
// Redaction is best-effort by contract: unknown rule names are ignored,
// and a missing or failing entity recognizer degrades to the pattern
// rules with a logged notice. Redact never returns an error, because a
// redaction failure must not leak raw text through an error path that
// bypasses the rest of the pipeline.
//
// # Basic Usage
//
//	engine := redact.NewEngine(nil)
//	clean := engine.Redact("Contact me at user@example.com", "work", []string{"mask_emails"})
//	// clean == "Contact me at [EMAIL]"
package redact
