// Package retrieve pulls evidence from the configured sources according
// to the chosen strategy, then deduplicates, ranks, and truncates the
// combined set. Individual source failures are absorbed: a failing source
// contributes zero records, never an error.
package retrieve

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"veracity/internal/evidence"
	"veracity/internal/model"
)

// Sources bundles the evidence providers the orchestrator fans out to.
// Any of them may be nil, which disables that provider.
type Sources struct {
	KnowledgeBase evidence.Source
	Web           evidence.Source // general web search
	WebCurrent    evidence.Source // recency-windowed web search
	WebHistorical evidence.Source // archival web search
}

// Orchestrator retrieves evidence per strategy.
type Orchestrator struct {
	sources Sources
}

// NewOrchestrator creates an orchestrator over the given sources.
func NewOrchestrator(sources Sources) *Orchestrator {
	return &Orchestrator{sources: sources}
}

// Result is the orchestrator's output: the finalized evidence set plus
// the agentic step trace when the agent loop ran.
type Result struct {
	Evidence []model.EvidenceRecord
	Trace    []model.AgentStep
}

// Retrieve pulls evidence for a claim. The agentic strategy runs the
// iterative tool loop; simple and hybrid fan out flat to the enabled
// sources. Dedup, ranking, and truncation apply uniformly afterwards.
func (o *Orchestrator) Retrieve(ctx context.Context, claim string, analysis model.ClaimAnalysis, cfg model.StrategyConfig) Result {
	var collected []model.EvidenceRecord
	var trace []model.AgentStep

	if cfg.UseAgent {
		collected, trace = o.runAgent(ctx, claim, analysis, cfg)
	} else {
		collected = o.fanOut(ctx, claim, analysis, cfg)
	}

	final := Dedup(collected)
	Rank(final)
	if cfg.MaxSources > 0 && len(final) > cfg.MaxSources {
		final = final[:cfg.MaxSources]
	}

	slog.Debug("retrieval complete",
		"collected", len(collected),
		"final", len(final),
		"agentic", cfg.UseAgent)

	return Result{Evidence: final, Trace: trace}
}

// fanOut queries the knowledge base and the general web source. The two
// calls share no state and run concurrently; results merge only after
// both resolve or fail.
func (o *Orchestrator) fanOut(ctx context.Context, claim string, analysis model.ClaimAnalysis, cfg model.StrategyConfig) []model.EvidenceRecord {
	var (
		mu        sync.Mutex
		kbRecords []model.EvidenceRecord
		webRecords []model.EvidenceRecord
	)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.UseVectorSearch && o.sources.KnowledgeBase != nil {
		g.Go(func() error {
			records := o.query(gctx, o.sources.KnowledgeBase, claim, evidence.SearchParams{Limit: cfg.MaxSources})
			mu.Lock()
			kbRecords = records
			mu.Unlock()
			return nil
		})
	}

	if cfg.UseWebSearch && o.sources.Web != nil {
		g.Go(func() error {
			records := o.query(gctx, o.sources.Web, claim, evidence.SearchParams{
				Limit:    cfg.MaxSources,
				Entities: analysis.Entities,
			})
			mu.Lock()
			webRecords = records
			mu.Unlock()
			return nil
		})
	}

	// Source errors are absorbed in query; Wait cannot fail.
	_ = g.Wait()

	return append(kbRecords, webRecords...)
}

// query calls one source, absorbing its error into an empty result.
func (o *Orchestrator) query(ctx context.Context, src evidence.Source, claim string, params evidence.SearchParams) []model.EvidenceRecord {
	records, err := src.Search(ctx, claim, params)
	if err != nil {
		slog.Warn("evidence source failed", "kind", src.Kind(), "error", err)
		return nil
	}
	return records
}

// Dedup removes records sharing a dedup key (URL plus 100-char snippet
// prefix), keeping the first occurrence and preserving relative order.
// Deduplicating twice yields the same result as deduplicating once.
func Dedup(records []model.EvidenceRecord) []model.EvidenceRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]model.EvidenceRecord, 0, len(records))
	for _, rec := range records {
		key := rec.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// Rank sorts in place: vector-sourced records before all others, then
// descending by relevance score within each group. Records without a
// score rank at 0.8 for high credibility and 0.5 otherwise. The sort is
// stable so equal-ranked records keep their collection order.
func Rank(records []model.EvidenceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		iVector := records[i].SourceKind == model.SourceKindVector
		jVector := records[j].SourceKind == model.SourceKindVector
		if iVector != jVector {
			return iVector
		}
		return rankScore(records[i]) > rankScore(records[j])
	})
}

func rankScore(rec model.EvidenceRecord) float64 {
	if rec.RelevanceScore != nil {
		return *rec.RelevanceScore
	}
	if rec.Credibility == model.CredibilityHigh {
		return 0.8
	}
	return 0.5
}
