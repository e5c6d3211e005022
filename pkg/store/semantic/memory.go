package semantic

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemorySearcher implements Searcher and Indexer over an in-memory
// document set with naive term-overlap scoring. It exists for tests and
// for running the mediator without a vector-search backend.
type MemorySearcher struct {
	mu   sync.RWMutex
	docs []Document
}

// NewMemorySearcher creates an empty in-memory searcher.
func NewMemorySearcher() *MemorySearcher {
	return &MemorySearcher{}
}

// Index stores the document.
func (m *MemorySearcher) Index(ctx context.Context, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, doc)
	return nil
}

// DeleteScope removes every stored document for scope.
func (m *MemorySearcher) DeleteScope(ctx context.Context, scope string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.docs[:0]
	for _, doc := range m.docs {
		if doc.Scope != scope {
			kept = append(kept, doc)
		}
	}
	m.docs = kept
	return nil
}

// Search scores documents by the fraction of query terms they contain,
// filtered to the allowed scopes, best-first.
func (m *MemorySearcher) Search(ctx context.Context, query string, scopes []string, limit int) []Result {
	if limit <= 0 {
		limit = 5
	}

	allowed := make(map[string]bool, len(scopes))
	for _, scope := range scopes {
		allowed[scope] = true
	}

	terms := strings.Fields(strings.ToLower(query))

	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []Result
	for _, doc := range m.docs {
		if len(scopes) > 0 && !allowed[doc.Scope] {
			continue
		}
		score := termOverlap(terms, strings.ToLower(doc.Content))
		if score == 0 {
			continue
		}
		results = append(results, Result{
			Content:  doc.Content,
			Source:   doc.Source,
			Score:    score,
			Metadata: doc.Metadata,
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func termOverlap(terms []string, content string) float64 {
	if len(terms) == 0 {
		return 0
	}
	hits := 0
	for _, term := range terms {
		if strings.Contains(content, term) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}
