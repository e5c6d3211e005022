package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"synm-hq/mediator/pkg/pipeline"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, category, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Category: category, Message: message}})
}

// writePipelineError maps a categorized pipeline error onto its HTTP
// status. Only the rejection message is echoed; wrapped causes and
// uncategorized errors stay opaque so internal failure detail never
// reaches the client.
func writePipelineError(w http.ResponseWriter, err error) {
	var perr *pipeline.Error
	if !errors.As(err, &perr) {
		writeError(w, http.StatusInternalServerError, "internal", "an internal error occurred")
		return
	}
	writeError(w, statusFor(perr.Category), string(perr.Category), perr.Message)
}

// statusFor maps the error taxonomy onto HTTP statuses. The mapping is
// part of the API contract and never changes per-request.
func statusFor(category pipeline.Category) int {
	switch category {
	case pipeline.CategoryUnauthenticated:
		return http.StatusUnauthorized
	case pipeline.CategoryNotFound:
		return http.StatusNotFound
	case pipeline.CategoryExpired:
		return http.StatusGone
	case pipeline.CategoryForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// outcomeFor labels a request outcome for metrics.
func outcomeFor(err error) string {
	if err == nil {
		return "success"
	}
	if category, ok := pipeline.CategoryOf(err); ok {
		return string(category)
	}
	return "internal"
}
