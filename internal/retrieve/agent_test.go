package retrieve

import (
	"context"
	"errors"
	"testing"

	"veracity/internal/evidence"
	"veracity/internal/model"
)

func agentSources(kbCount, currentCount, historicalCount int) Sources {
	build := func(kind model.SourceKind, n int, prefix string) evidence.Source {
		var records []model.EvidenceRecord
		for i := 0; i < n; i++ {
			records = append(records, model.EvidenceRecord{
				Title:       prefix,
				URL:         "https://example.com/" + prefix,
				Snippet:     prefix + " snippet with enough words to matter",
				Credibility: model.CredibilityMedium,
				SourceKind:  kind,
			})
		}
		return evidence.NewStaticSource(kind, records)
	}

	return Sources{
		KnowledgeBase: build(model.SourceKindVector, kbCount, "kb"),
		WebCurrent:    build(model.SourceKindWebCurrent, currentCount, "current"),
		WebHistorical: build(model.SourceKindWebHistorical, historicalCount, "historical"),
	}
}

func agenticConfig() model.StrategyConfig {
	return model.StrategyConfig{
		UseVectorSearch: true,
		UseWebSearch:    true,
		UseAgent:        true,
		MaxSources:      10,
		MaxIterations:   5,
		TimeoutMs:       30000,
	}
}

func traceTools(trace []model.AgentStep) []string {
	tools := make([]string, len(trace))
	for i, step := range trace {
		tools[i] = step.Tool
	}
	return tools
}

func TestRunAgent_ToolSequenceByTemporality(t *testing.T) {
	tests := []struct {
		name     string
		analysis model.ClaimAnalysis
		want     []string
	}{
		{
			name:     "current claim uses current web window",
			analysis: model.ClaimAnalysis{Temporality: model.TemporalityCurrent},
			want:     []string{"knowledge_base", "web_search_current"},
		},
		{
			name:     "recent claim uses current web window",
			analysis: model.ClaimAnalysis{Temporality: model.TemporalityRecent},
			want:     []string{"knowledge_base", "web_search_current"},
		},
		{
			name:     "historical claim uses historical web window",
			analysis: model.ClaimAnalysis{Temporality: model.TemporalityHistorical},
			want:     []string{"knowledge_base", "web_search_historical"},
		},
		{
			name:     "timeless claim uses historical web window",
			analysis: model.ClaimAnalysis{Temporality: model.TemporalityTimeless},
			want:     []string{"knowledge_base", "web_search_historical"},
		},
		{
			name: "complex claim gets both windows",
			analysis: model.ClaimAnalysis{
				Temporality: model.TemporalityCurrent,
				Complexity:  model.ComplexityComplex,
			},
			want: []string{"knowledge_base", "web_search_current", "web_search_historical"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// One record per tool keeps the loop under the early-stop
			// threshold so the full sequence runs.
			o := NewOrchestrator(agentSources(1, 1, 1))

			_, trace := o.runAgent(context.Background(), "claim", tt.analysis, agenticConfig())

			got := traceTools(trace)
			if len(got) != len(tt.want) {
				t.Fatalf("expected tools %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("step %d: expected %s, got %s", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestRunAgent_EarlyStop(t *testing.T) {
	// The knowledge base alone crosses the early-stop threshold; the web
	// tools must never run.
	o := NewOrchestrator(agentSources(5, 3, 3))

	collected, trace := o.runAgent(context.Background(), "claim",
		model.ClaimAnalysis{Complexity: model.ComplexityComplex}, agenticConfig())

	if len(collected) != 5 {
		t.Errorf("expected 5 records from the first tool, got %d", len(collected))
	}
	if len(trace) != 1 {
		t.Fatalf("expected the loop to stop after one step, got %d", len(trace))
	}
	if trace[0].Tool != "knowledge_base" {
		t.Errorf("expected knowledge_base step, got %s", trace[0].Tool)
	}
}

func TestRunAgent_ToolFailureContinues(t *testing.T) {
	sources := agentSources(0, 2, 0)
	sources.KnowledgeBase = evidence.NewFailingSource(model.SourceKindVector, errors.New("connection refused"))
	o := NewOrchestrator(sources)

	collected, trace := o.runAgent(context.Background(), "claim",
		model.ClaimAnalysis{Temporality: model.TemporalityCurrent}, agenticConfig())

	if len(trace) != 2 {
		t.Fatalf("expected failed step plus web step in trace, got %d", len(trace))
	}
	if trace[0].Success {
		t.Error("failed tool must record Success=false")
	}
	if trace[0].ResultCount != 0 {
		t.Errorf("failed tool must record zero results, got %d", trace[0].ResultCount)
	}
	if !trace[1].Success {
		t.Error("subsequent tool should still run and succeed")
	}
	if len(collected) != 2 {
		t.Errorf("expected 2 records from the surviving tool, got %d", len(collected))
	}
}

func TestRunAgent_IterationCap(t *testing.T) {
	o := NewOrchestrator(agentSources(1, 1, 1))

	cfg := agenticConfig()
	cfg.MaxIterations = 1

	_, trace := o.runAgent(context.Background(), "claim",
		model.ClaimAnalysis{Complexity: model.ComplexityComplex}, cfg)

	if len(trace) != 1 {
		t.Errorf("expected 1 step under the iteration cap, got %d", len(trace))
	}
}

func TestRunAgent_NilSourcesSkipped(t *testing.T) {
	o := NewOrchestrator(Sources{
		WebCurrent: evidence.NewStaticSource(model.SourceKindWebCurrent, []model.EvidenceRecord{
			{URL: "https://example.com/a", SourceKind: model.SourceKindWebCurrent},
		}),
	})

	_, trace := o.runAgent(context.Background(), "claim",
		model.ClaimAnalysis{Temporality: model.TemporalityCurrent}, agenticConfig())

	got := traceTools(trace)
	if len(got) != 1 || got[0] != "web_search_current" {
		t.Errorf("expected only the configured tool, got %v", got)
	}
}

func TestRetrieve_AgenticProducesTrace(t *testing.T) {
	o := NewOrchestrator(agentSources(2, 2, 2))

	result := o.Retrieve(context.Background(), "claim",
		model.ClaimAnalysis{Temporality: model.TemporalityCurrent}, agenticConfig())

	if len(result.Trace) == 0 {
		t.Fatal("agentic retrieval must produce a step trace")
	}
	for _, step := range result.Trace {
		if step.Input != "claim" {
			t.Errorf("trace step should record its input, got %q", step.Input)
		}
	}
}
