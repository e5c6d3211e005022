// Package pipeline assembles redacted context for a mediated request.
//
// Assemble runs a strictly ordered sequence of hard gates: session
// validation, policy authorization, candidate gathering, deduplication,
// redaction, size bounding, and finally the audit append. Failure at any
// gate aborts the whole request with no partial disclosure. The one
// deliberate asymmetry is the audit append: a retrieval backend being
// down degrades the result, but a failed audit write fails the request,
// because an unaudited disclosure is a security violation.
package pipeline
