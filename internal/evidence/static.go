package evidence

import (
	"context"

	"veracity/internal/model"
)

// StaticSource serves a fixed set of records. It backs tests and local
// dry runs where no external source is reachable.
type StaticSource struct {
	kind    model.SourceKind
	records []model.EvidenceRecord
	err     error
}

// NewStaticSource creates a source returning the given records.
func NewStaticSource(kind model.SourceKind, records []model.EvidenceRecord) *StaticSource {
	return &StaticSource{kind: kind, records: records}
}

// NewFailingSource creates a source that always returns err.
func NewFailingSource(kind model.SourceKind, err error) *StaticSource {
	return &StaticSource{kind: kind, err: err}
}

// Kind identifies the configured source kind.
func (s *StaticSource) Kind() model.SourceKind {
	return s.kind
}

// Search returns the configured records up to params.Limit.
func (s *StaticSource) Search(_ context.Context, _ string, params SearchParams) ([]model.EvidenceRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	records := s.records
	if params.Limit > 0 && len(records) > params.Limit {
		records = records[:params.Limit]
	}
	out := make([]model.EvidenceRecord, len(records))
	copy(out, records)
	return out, nil
}
