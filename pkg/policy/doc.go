// Package policy loads access-control and redaction-rule documents and
// answers authorization queries for the mediator.
//
// # Policy Documents
//
// Policies are YAML files in a single directory. Each file may define
// profiles, scopes, and defaults:
//
//	profiles:
//	  work:
//	    allowed_scopes: [bio.basic, work.history]
//	    redactions: [mask_emails, drop_phone]
//	scopes:
//	  bio.basic:
//	    description: Basic biographical facts
//	    sensitivity: low
//	defaults:
//	  ttl_minutes: 20
//
// Files merge in lexical filename order with last-write-wins per
// profile/scope key (not a deep merge). Lexical ordering is deliberate:
// directory enumeration order is filesystem-dependent and would make the
// merged result nondeterministic. A malformed file is logged and
// skipped; the remaining files still apply.
//
// # Immutability
//
// Load produces an immutable Document that is passed by reference into
// the consumers' constructors. There is no ambient global and no reload;
// applying an on-disk change requires a restart. The Watcher exists only
// to surface that fact operationally: it logs when policy files change
// under a running process.
//
// # Fail-Closed Defaults
//
// CheckAccess returns false for unknown profiles, and RedactionRulesFor
// returns the maximal-redaction sentinel rule for unknown profiles —
// never "no redaction".
package policy
