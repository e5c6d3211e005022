// Package server provides the mediator's HTTP surface.
//
// Routes are served by a stdlib mux behind a middleware chain of
// recovery, request id, logging, and bearer authentication. Every
// mediated operation maps a pipeline error category onto a stable HTTP
// status; uncategorized errors collapse to 500 with no internal detail
// in the response body.
package server
