package evidence

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"veracity/internal/cache"
	"veracity/internal/model"
)

// CachedSource wraps a source with the layered result cache. Identical
// queries within the TTL are served from cache instead of re-hitting the
// backing API.
type CachedSource struct {
	inner Source
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedSource wraps inner with the given cache.
func NewCachedSource(inner Source, c cache.Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{inner: inner, cache: c, ttl: ttl}
}

// Kind delegates to the wrapped source.
func (s *CachedSource) Kind() model.SourceKind {
	return s.inner.Kind()
}

// Search serves from cache when possible, falling back to the wrapped
// source and caching its result.
func (s *CachedSource) Search(ctx context.Context, query string, params SearchParams) ([]model.EvidenceRecord, error) {
	key := cache.Key(string(s.inner.Kind()) + "::" + query + "::" + strconv.Itoa(params.Limit))

	if data, found := s.cache.Get(key); found {
		var records []model.EvidenceRecord
		if err := json.Unmarshal(data, &records); err == nil {
			slog.Debug("evidence cache hit", "kind", s.inner.Kind(), "query", query)
			return records, nil
		}
		// Corrupt entry, drop it and fall through.
		_ = s.cache.Delete(key)
	}

	records, err := s.inner.Search(ctx, query, params)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if err := s.cache.Set(key, data, s.ttl); err != nil {
			slog.Debug("evidence cache write failed", "error", err)
		}
	}

	return records, nil
}
