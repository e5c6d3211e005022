package semantic

import "context"

// Result is one similarity hit, ordered best-first.
type Result struct {
	Content  string            `json:"content"`
	Source   string            `json:"source"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Document is content submitted for indexing by the seed path.
type Document struct {
	Content  string            `json:"content"`
	Source   string            `json:"source"`
	Scope    string            `json:"scope"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Searcher is the read side consumed by the pipeline.
//
// Search has no error return on purpose: the collaborator contract is
// "degrade to empty results, never raise into the pipeline". A caller
// that needs to distinguish degraded mode checks Connected on the
// concrete client.
type Searcher interface {
	Search(ctx context.Context, query string, scopes []string, limit int) []Result
}

// Indexer is the write side used when seeding the store.
type Indexer interface {
	Index(ctx context.Context, doc Document) error

	// DeleteScope removes everything indexed under scope, so a re-seed
	// replaces content instead of accumulating stale copies.
	DeleteScope(ctx context.Context, scope string) error
}
