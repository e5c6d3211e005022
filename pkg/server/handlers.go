package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"synm-hq/mediator/pkg/audit"
	"synm-hq/mediator/pkg/audit/export"
	"synm-hq/mediator/pkg/auth"
	"synm-hq/mediator/pkg/pipeline"
)

// Default trailing window for audit exports.
const defaultExportWindow = 24 * time.Hour

func (s *Server) recordRequest(operation string, start time.Time, err error) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordRequest(operation, outcomeFor(err), time.Since(start))
	}
}

func (s *Server) recordAuditEvent(eventType string) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordAuditEvent(eventType)
	}
}

// handleRoot answers only the exact root path; anything else is an
// unknown route.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not_found", "unknown route")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "synm-mediator",
		"status":  "ok",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAuth exchanges the personal access token for a short-lived
// capability token. Only the PAT is accepted here; a capability token
// cannot mint another.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}
	start := time.Now()

	cred := bearerToken(r)
	if !auth.VerifyPAT(s.deps.PersonalAccessToken, cred) {
		err := pipeline.NewError(pipeline.CategoryUnauthenticated, "missing or invalid credential")
		s.recordRequest("auth", start, err)
		writePipelineError(w, err)
		return
	}

	token, expiresAt, err := s.deps.Tokens.Issue(cred)
	if err != nil {
		slog.Error("capability token issue failed", "error", err)
		s.recordRequest("auth", start, err)
		writeError(w, http.StatusInternalServerError, "internal", "an internal error occurred")
		return
	}

	if _, err := s.deps.Chain.Append(r.Context(), audit.Entry{
		EventType:      audit.EventTokenIssued,
		CallerIdentity: cred,
		Metadata:       map[string]any{"expires_at": expiresAt.Format(time.RFC3339)},
	}); err != nil {
		s.recordRequest("auth", start, err)
		writeError(w, http.StatusInternalServerError, "audit_write_failure", "token issue could not be audited")
		return
	}
	s.recordAuditEvent(audit.EventTokenIssued)

	s.recordRequest("auth", start, nil)
	writeJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_at": expiresAt,
	})
}

type sessionRequest struct {
	Profile    string `json:"profile"`
	TTLMinutes int    `json:"ttl_minutes"`
}

// handleSessionCreate mints a session for a known profile.
func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}
	start := time.Now()

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if s.deps.Policies.AllowedScopes(req.Profile) == nil {
		err := pipeline.NewError(pipeline.CategoryNotFound, "unknown profile")
		s.recordRequest("session", start, err)
		writePipelineError(w, err)
		return
	}

	cred := credentialFrom(r.Context())
	sess, err := s.deps.Sessions.Create(r.Context(), req.Profile, req.TTLMinutes, auth.DigestToken(cred))
	if err != nil {
		slog.Error("session create failed", "error", err)
		s.recordRequest("session", start, err)
		writeError(w, http.StatusInternalServerError, "internal", "an internal error occurred")
		return
	}

	if _, err := s.deps.Chain.Append(r.Context(), audit.Entry{
		EventType:      audit.EventSessionCreated,
		SessionID:      sess.ID,
		Profile:        sess.Profile,
		CallerIdentity: cred,
		Metadata: map[string]any{
			"expires_at": sess.ExpiresAt.Format(time.RFC3339),
		},
	}); err != nil {
		s.recordRequest("session", start, err)
		writeError(w, http.StatusInternalServerError, "audit_write_failure", "session creation could not be audited")
		return
	}
	s.recordAuditEvent(audit.EventSessionCreated)

	s.recordRequest("session", start, nil)
	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": sess.ID,
		"profile":    sess.Profile,
		"created_at": sess.CreatedAt,
		"expires_at": sess.ExpiresAt,
	})
}

// handleContext runs the assembly pipeline. A Forbidden rejection is
// the one denial recorded in the audit log, as access_denied.
func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}
	start := time.Now()

	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	req.CallerIdentity = credentialFrom(r.Context())

	result, err := s.deps.Assembler.Assemble(r.Context(), req)
	if err != nil {
		if category, ok := pipeline.CategoryOf(err); ok && category == pipeline.CategoryForbidden {
			s.auditAccessDenied(r, req)
		}
		s.recordRequest("context", start, err)
		writePipelineError(w, err)
		return
	}
	s.recordAuditEvent(audit.EventContextProvided)

	s.recordRequest("context", start, nil)
	writeJSON(w, http.StatusOK, result)
}

// auditAccessDenied records a denied context attempt. The denial itself
// already happened; a failed append here is logged, not surfaced.
func (s *Server) auditAccessDenied(r *http.Request, req pipeline.Request) {
	if _, err := s.deps.Chain.Append(r.Context(), audit.Entry{
		EventType:      audit.EventAccessDenied,
		SessionID:      req.SessionID,
		Profile:        req.Profile,
		CallerIdentity: req.CallerIdentity,
		Metadata:       map[string]any{"scopes": req.Scopes},
	}); err != nil {
		slog.Error("failed to audit denied access", "error", err)
		return
	}
	s.recordAuditEvent(audit.EventAccessDenied)
}

type revokeRequest struct {
	SessionID string `json:"session_id"`
}

// handleRevoke terminates a session. Revoking an absent or already
// revoked session succeeds with revoked=false.
func (s *Server) handleRevoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}
	start := time.Now()

	var req revokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "session_id is required")
		return
	}

	revoked, err := s.deps.Sessions.Revoke(r.Context(), req.SessionID)
	if err != nil {
		slog.Error("session revoke failed", "error", err)
		s.recordRequest("revoke", start, err)
		writeError(w, http.StatusInternalServerError, "internal", "an internal error occurred")
		return
	}

	if revoked {
		if _, err := s.deps.Chain.Append(r.Context(), audit.Entry{
			EventType:      audit.EventSessionRevoked,
			SessionID:      req.SessionID,
			CallerIdentity: credentialFrom(r.Context()),
		}); err != nil {
			s.recordRequest("revoke", start, err)
			writeError(w, http.StatusInternalServerError, "audit_write_failure", "revocation could not be audited")
			return
		}
		s.recordAuditEvent(audit.EventSessionRevoked)
	}

	s.recordRequest("revoke", start, nil)
	writeJSON(w, http.StatusOK, map[string]any{"revoked": revoked})
}

type exportRequest struct {
	WindowMinutes int    `json:"window_minutes"`
	Format        string `json:"format"`
}

// handleAuditExport returns the trailing window of audit events as JSON
// or CSV. The export itself is an audited event.
func (s *Server) handleAuditExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}
	start := time.Now()

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	window := defaultExportWindow
	if req.WindowMinutes > 0 {
		window = time.Duration(req.WindowMinutes) * time.Minute
	}

	format := req.Format
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, "bad_request", "format must be json or csv")
		return
	}

	events, err := s.deps.Chain.EventsSince(r.Context(), window)
	if err != nil {
		slog.Error("audit export query failed", "error", err)
		s.recordRequest("audit_export", start, err)
		writeError(w, http.StatusInternalServerError, "internal", "an internal error occurred")
		return
	}

	var buf bytes.Buffer
	if format == "csv" {
		err = export.NewCSVExporter(true).Export(r.Context(), events, &buf)
	} else {
		err = export.NewJSONExporter(false).Export(r.Context(), events, &buf)
	}
	if err != nil {
		slog.Error("audit export encode failed", "error", err)
		s.recordRequest("audit_export", start, err)
		writeError(w, http.StatusInternalServerError, "internal", "an internal error occurred")
		return
	}

	if _, err := s.deps.Chain.Append(r.Context(), audit.Entry{
		EventType:      audit.EventAuditExported,
		CallerIdentity: credentialFrom(r.Context()),
		Metadata: map[string]any{
			"format":  format,
			"records": len(events),
		},
	}); err != nil {
		s.recordRequest("audit_export", start, err)
		writeError(w, http.StatusInternalServerError, "audit_write_failure", "export could not be audited")
		return
	}
	s.recordAuditEvent(audit.EventAuditExported)

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("audit export write failed", "error", err)
	}
	s.recordRequest("audit_export", start, nil)
}
