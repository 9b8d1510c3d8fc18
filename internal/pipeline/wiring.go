package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"veracity/internal/assess"
	"veracity/internal/cache"
	"veracity/internal/classify"
	"veracity/internal/critique"
	"veracity/internal/evidence"
	"veracity/internal/llm"
	"veracity/internal/model"
	"veracity/internal/retrieve"
	"veracity/internal/verdict"
	"veracity/internal/worker"
)

// NewFromConfig assembles a production pipeline: OpenAI-backed completion
// for classification, generation, and critique, Weaviate knowledge base,
// and the configured web search sources. Evidence sources degrade to nil
// when unconfigured or unreachable; the completion provider is required.
func NewFromConfig(cfg *model.Config) (*Pipeline, error) {
	completer, err := llm.NewCompleter(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}
	if completer == nil {
		return nil, fmt.Errorf("an LLM provider is required for verdict generation")
	}

	sources := buildSources(cfg)

	p := New(Dependencies{
		Classifier: classify.NewClassifier(completer, cfg.LLM.ClassificationTemperature),
		Router:     DefaultRouter{},
		Retriever:  retrieve.NewOrchestrator(sources),
		Assessor:   assess.NewAssessor(),
		Generator:  verdict.NewGenerator(completer, cfg.LLM.GenerationTemperature),
		Auditor:    critique.NewAuditor(completer, cfg.LLM.CritiqueTemperature),
	})
	p.IncludeEvidence(cfg.Output.IncludeEvidence)
	return p, nil
}

func buildSources(cfg *model.Config) retrieve.Sources {
	var sources retrieve.Sources

	if cfg.Weaviate.URL != "" {
		kb, err := evidence.NewKnowledgeBaseSource(cfg.Weaviate)
		if err != nil {
			slog.Warn("knowledge base unavailable, continuing without it", "error", err)
		} else {
			sources.KnowledgeBase = kb
		}
	}

	if cfg.WebSearch.Endpoint != "" {
		limiter := worker.NewLimiter(cfg.WebSearch.RequestsPerSecond, cfg.WebSearch.Burst)

		var fetcher *evidence.PageFetcher
		if cfg.WebSearch.EnrichSnippets {
			fetcher = evidence.NewPageFetcher(cfg.HTTP)
		}

		sources.Web = evidence.NewWebSource(cfg.WebSearch, cfg.HTTP, evidence.WebVariantGeneral, limiter, fetcher)
		sources.WebCurrent = evidence.NewWebSource(cfg.WebSearch, cfg.HTTP, evidence.WebVariantCurrent, limiter, fetcher)
		sources.WebHistorical = evidence.NewWebSource(cfg.WebSearch, cfg.HTTP, evidence.WebVariantHistorical, limiter, fetcher)
	}

	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if base, err := os.UserCacheDir(); err == nil {
				dir = filepath.Join(base, "veracity")
			} else {
				dir = filepath.Join(os.TempDir(), "veracity-cache")
			}
		}
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		wrap := func(s evidence.Source) evidence.Source {
			if s == nil {
				return nil
			}
			return evidence.NewCachedSource(s, layered, cfg.Cache.MemoryTTL)
		}
		sources.KnowledgeBase = wrap(sources.KnowledgeBase)
		sources.Web = wrap(sources.Web)
		sources.WebCurrent = wrap(sources.WebCurrent)
		sources.WebHistorical = wrap(sources.WebHistorical)
	}

	return sources
}
