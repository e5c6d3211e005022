// Package metrics exposes Prometheus metrics for the mediator.
//
// The Collector owns its own registry so tests can create isolated
// instances, and records four families: request counts by operation and
// outcome, pipeline duration, audit events by type, and the semantic
// backend's connected state. Cardinality is bounded by construction:
// every label value comes from a closed set (operations, error
// categories, audit event types), never from caller input.
package metrics
