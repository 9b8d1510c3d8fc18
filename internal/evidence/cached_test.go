package evidence

import (
	"context"
	"errors"
	"testing"
	"time"

	"veracity/internal/cache"
	"veracity/internal/model"
)

// countingSource wraps a StaticSource and counts Search calls.
type countingSource struct {
	inner Source
	calls int
}

func (s *countingSource) Kind() model.SourceKind { return s.inner.Kind() }

func (s *countingSource) Search(ctx context.Context, query string, params SearchParams) ([]model.EvidenceRecord, error) {
	s.calls++
	return s.inner.Search(ctx, query, params)
}

func TestCachedSource(t *testing.T) {
	records := []model.EvidenceRecord{
		{
			Title:       "Cached record",
			URL:         "https://example.com/a",
			Snippet:     "snippet",
			Credibility: model.CredibilityMedium,
			SourceKind:  model.SourceKindWeb,
		},
	}
	inner := &countingSource{inner: NewStaticSource(model.SourceKindWeb, records)}
	cached := NewCachedSource(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	ctx := context.Background()
	params := SearchParams{Limit: 5}

	first, err := cached.Search(ctx, "query", params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cached.Search(ctx, "query", params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("expected one backing call for a repeated query, got %d", inner.calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 record from both calls, got %d and %d", len(first), len(second))
	}
	if second[0].Credibility != model.CredibilityMedium {
		t.Errorf("credibility must survive the cache round-trip, got %s", second[0].Credibility)
	}

	// A different query misses.
	if _, err := cached.Search(ctx, "other query", params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("expected a backing call for a new query, got %d", inner.calls)
	}

	// A different limit is a different cache key.
	if _, err := cached.Search(ctx, "query", SearchParams{Limit: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("expected a backing call for a new limit, got %d", inner.calls)
	}
}

func TestCachedSource_ErrorsNotCached(t *testing.T) {
	inner := &countingSource{inner: NewFailingSource(model.SourceKindWeb, errors.New("search down"))}
	cached := NewCachedSource(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := cached.Search(ctx, "query", SearchParams{}); err == nil {
			t.Fatal("expected the backing error to propagate")
		}
	}
	if inner.calls != 2 {
		t.Errorf("errors must not be cached, expected 2 backing calls, got %d", inner.calls)
	}
}

func TestCachedSource_KindDelegates(t *testing.T) {
	inner := NewStaticSource(model.SourceKindVector, nil)
	cached := NewCachedSource(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	if cached.Kind() != model.SourceKindVector {
		t.Errorf("expected the wrapped source's kind, got %s", cached.Kind())
	}
}
