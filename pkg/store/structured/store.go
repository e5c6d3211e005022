package structured

import (
	"context"
	"time"
)

// ScopeData is the stored content for one scope.
type ScopeData struct {
	Scope     string            `json:"scope"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Store is the structured-retrieval collaborator consumed by the
// pipeline.
type Store interface {
	// GetScopeData returns the newest content for scope, or nil when the
	// scope has no content.
	GetScopeData(ctx context.Context, scope string) (*ScopeData, error)

	// StoreScopeData inserts or replaces the content for scope.
	StoreScopeData(ctx context.Context, scope, content string, metadata map[string]string) error

	Close() error
}
