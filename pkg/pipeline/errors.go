package pipeline

import "errors"

// Category classifies a pipeline rejection. Categories are the only
// error channel exposed to callers: a rejection carries nothing that
// would let a caller distinguish more than the taxonomy defines.
type Category string

const (
	// CategoryUnauthenticated rejects a missing or invalid credential
	// before any store is touched.
	CategoryUnauthenticated Category = "unauthenticated"

	// CategoryNotFound rejects an unknown (or revoked) session or an
	// unknown profile without disclosing which.
	CategoryNotFound Category = "not_found"

	// CategoryExpired rejects a session past its TTL. Distinct from
	// CategoryNotFound so clients know to mint a new session rather than
	// retry the same id.
	CategoryExpired Category = "expired"

	// CategoryForbidden rejects a scope the policy denies.
	CategoryForbidden Category = "forbidden"

	// CategoryAuditWriteFailure fails the whole request when the audit
	// append did not land.
	CategoryAuditWriteFailure Category = "audit_write_failure"
)

// Error is a categorized pipeline rejection.
type Error struct {
	Category Category
	Message  string
	Err      error
}

// Error returns a human-readable description.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a categorized rejection.
func NewError(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

// WrapError creates a categorized rejection around a cause.
func WrapError(category Category, message string, err error) *Error {
	return &Error{Category: category, Message: message, Err: err}
}

// CategoryOf extracts the category from err. Uncategorized errors
// report false and must be treated as internal failures.
func CategoryOf(err error) (Category, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Category, true
	}
	return "", false
}
