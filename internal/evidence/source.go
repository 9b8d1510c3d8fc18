// Package evidence provides the evidence sources the retrieval
// orchestrator fans out to: the Weaviate knowledge base, the web search
// API in its current and historical variants, and a static in-memory
// source for tests. Every source is independently optional; a failing
// source is absorbed at its call site and yields zero records.
package evidence

import (
	"context"

	"veracity/internal/model"
)

// SearchParams carries per-call retrieval hints.
type SearchParams struct {
	// Limit caps the number of records returned. Zero means source default.
	Limit int

	// Entities from the claim analysis, used by web sources to sharpen
	// the query.
	Entities []string
}

// Source is one evidence provider.
type Source interface {
	// Kind identifies the origin tag stamped onto returned records.
	Kind() model.SourceKind

	// Search retrieves evidence for a query.
	Search(ctx context.Context, query string, params SearchParams) ([]model.EvidenceRecord, error)
}
