// Package semantic is the semantic-retrieval collaborator: similarity
// search over an external vector-search service.
//
// # Degraded Mode
//
// Availability is carried explicitly in the client's connected state
// rather than discovered by callers. Search always returns an ordered
// (possibly empty) result slice and never an error: an unreachable
// backend degrades the pipeline to structured-only content, it does not
// fail requests. Every backend call is bounded by the configured
// timeout so a slow search service cannot hang the pipeline.
package semantic
