package audit

import "fmt"

// WriteError reports a failed append. Audit logging is not best-effort:
// callers must treat this as fatal for the request in flight, because an
// action that was not durably logged must not be reported as completed.
type WriteError struct {
	EventType string
	Cause     error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("audit write failed [event_type=%s]: %v", e.EventType, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// NewWriteError creates a new WriteError.
func NewWriteError(eventType string, cause error) *WriteError {
	return &WriteError{EventType: eventType, Cause: cause}
}
