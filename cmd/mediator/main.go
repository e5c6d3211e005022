// Synm Mediator is a personal-knowledge-store mediator for AI agents.
//
// It sits between agents and a person's private content, enforcing
// profile-scoped access policy, applying redaction rules before any
// content leaves the process, and recording every disclosure in a
// tamper-evident audit chain.
//
// Usage:
//
//	# Start the server with default configuration
//	mediator run
//
//	# Start with a custom configuration file
//	mediator run --config /etc/mediator/config.yaml
//
//	# Verify the audit chain
//	mediator audit verify
//
//	# Export the last 24 hours of audit events as CSV
//	mediator audit export --window 24h --format csv
//
//	# Validate policy files without starting the server
//	mediator policy validate
//
//	# Load scope content into the stores
//	mediator seed --file seed.yaml
package main

func main() {
	Execute()
}
