package retrieve

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"veracity/internal/evidence"
	"veracity/internal/model"
)

func webRecord(url string, score float64) model.EvidenceRecord {
	return model.EvidenceRecord{
		Title:          url,
		URL:            url,
		Snippet:        "snippet for " + url,
		Credibility:    model.CredibilityMedium,
		SourceKind:     model.SourceKindWeb,
		RelevanceScore: &score,
	}
}

func vectorRecord(title string, certainty float64) model.EvidenceRecord {
	return model.EvidenceRecord{
		Title:          title,
		URL:            model.KnowledgeBaseURL,
		Snippet:        "stored fact: " + title,
		Credibility:    model.CredibilityHigh,
		SourceKind:     model.SourceKindVector,
		RelevanceScore: &certainty,
	}
}

func TestRetrieve_FanOut(t *testing.T) {
	sources := Sources{
		KnowledgeBase: evidence.NewStaticSource(model.SourceKindVector, []model.EvidenceRecord{
			vectorRecord("kb-1", 0.9),
		}),
		Web: evidence.NewStaticSource(model.SourceKindWeb, []model.EvidenceRecord{
			webRecord("https://example.com/a", 0.7),
			webRecord("https://example.com/b", 0.6),
		}),
	}
	o := NewOrchestrator(sources)

	cfg := model.StrategyConfig{UseVectorSearch: true, UseWebSearch: true, MaxSources: 8}
	result := o.Retrieve(context.Background(), "claim", model.ClaimAnalysis{}, cfg)

	if len(result.Evidence) != 3 {
		t.Fatalf("expected 3 records, got %d", len(result.Evidence))
	}
	if result.Evidence[0].SourceKind != model.SourceKindVector {
		t.Errorf("vector evidence should rank first, got %s", result.Evidence[0].SourceKind)
	}
	if len(result.Trace) != 0 {
		t.Errorf("non-agentic retrieval must not produce a trace, got %d steps", len(result.Trace))
	}
}

func TestRetrieve_DisabledSources(t *testing.T) {
	sources := Sources{
		KnowledgeBase: evidence.NewStaticSource(model.SourceKindVector, []model.EvidenceRecord{
			vectorRecord("kb-1", 0.9),
		}),
		Web: evidence.NewStaticSource(model.SourceKindWeb, []model.EvidenceRecord{
			webRecord("https://example.com/a", 0.7),
		}),
	}
	o := NewOrchestrator(sources)

	cfg := model.StrategyConfig{UseVectorSearch: true, UseWebSearch: false, MaxSources: 8}
	result := o.Retrieve(context.Background(), "claim", model.ClaimAnalysis{}, cfg)

	for _, rec := range result.Evidence {
		if rec.SourceKind == model.SourceKindWeb {
			t.Errorf("web search disabled but got a web record: %+v", rec)
		}
	}
}

func TestRetrieve_FailingSourceAbsorbed(t *testing.T) {
	sources := Sources{
		KnowledgeBase: evidence.NewFailingSource(model.SourceKindVector, errors.New("weaviate down")),
		Web: evidence.NewStaticSource(model.SourceKindWeb, []model.EvidenceRecord{
			webRecord("https://example.com/a", 0.7),
		}),
	}
	o := NewOrchestrator(sources)

	cfg := model.StrategyConfig{UseVectorSearch: true, UseWebSearch: true, MaxSources: 8}
	result := o.Retrieve(context.Background(), "claim", model.ClaimAnalysis{}, cfg)

	if len(result.Evidence) != 1 {
		t.Fatalf("expected the surviving source's record, got %d", len(result.Evidence))
	}
}

func TestRetrieve_Truncation(t *testing.T) {
	var records []model.EvidenceRecord
	for _, url := range []string{"a", "b", "c", "d", "e", "f"} {
		records = append(records, webRecord("https://example.com/"+url, 0.5))
	}
	o := NewOrchestrator(Sources{
		Web: evidence.NewStaticSource(model.SourceKindWeb, records),
	})

	cfg := model.StrategyConfig{UseWebSearch: true, MaxSources: 5}
	result := o.Retrieve(context.Background(), "claim", model.ClaimAnalysis{}, cfg)

	if len(result.Evidence) != 5 {
		t.Errorf("expected truncation to 5, got %d", len(result.Evidence))
	}
}

func TestDedup(t *testing.T) {
	a := webRecord("https://example.com/a", 0.7)
	b := webRecord("https://example.com/b", 0.6)
	dupA := a
	dupA.Title = "different title, same url and snippet"

	records := []model.EvidenceRecord{a, b, dupA, b}

	got := Dedup(records)
	want := []model.EvidenceRecord{a, b}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dedup mismatch (-want +got):\n%s", diff)
	}

	// Idempotent: deduplicating twice changes nothing.
	again := Dedup(got)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("dedup not idempotent (-first +second):\n%s", diff)
	}
}

func TestDedup_SnippetPrefixKey(t *testing.T) {
	a := webRecord("https://example.com/a", 0.7)
	b := a
	b.Snippet = "entirely different snippet at the same URL"

	got := Dedup([]model.EvidenceRecord{a, b})
	if len(got) != 2 {
		t.Errorf("same URL with different snippets must not merge, got %d records", len(got))
	}
}

func TestRank(t *testing.T) {
	low := webRecord("https://example.com/low", 0.2)
	high := webRecord("https://example.com/high", 0.9)
	vector := vectorRecord("kb", 0.5)

	noScore := model.EvidenceRecord{
		URL:         "https://example.com/unscored",
		Credibility: model.CredibilityHigh,
		SourceKind:  model.SourceKindWeb,
	}

	records := []model.EvidenceRecord{low, noScore, high, vector}
	Rank(records)

	wantOrder := []string{vector.URL, high.URL, noScore.URL, low.URL}
	for i, url := range wantOrder {
		if records[i].URL != url {
			t.Fatalf("position %d: expected %s, got %s", i, url, records[i].URL)
		}
	}
}

func TestRank_StableForEqualScores(t *testing.T) {
	a := webRecord("https://example.com/a", 0.5)
	b := webRecord("https://example.com/b", 0.5)
	c := webRecord("https://example.com/c", 0.5)

	records := []model.EvidenceRecord{a, b, c}
	Rank(records)

	if records[0].URL != a.URL || records[1].URL != b.URL || records[2].URL != c.URL {
		t.Errorf("equal-score records must keep collection order, got %v",
			[]string{records[0].URL, records[1].URL, records[2].URL})
	}
}
