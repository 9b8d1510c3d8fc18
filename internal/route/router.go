// Package route maps a claim's analysis to a verification strategy.
// Routing is a pure function and never fails: unknown or missing fields
// fall through to the hybrid default.
package route

import (
	"log/slog"
	"strings"

	"veracity/internal/model"
)

// contentiousKeywords are language markers that flag a claim as disputed
// enough to warrant iterative investigation. Substring heuristics are
// fragile; they live behind hasContentiousKeyword so they can be swapped
// for a real classifier without touching the routing rules.
var contentiousKeywords = []string{
	"controversial", "disputed", "alleged", "reportedly", "claims",
}

// hasContentiousKeyword reports whether any keyword case-insensitively
// equals one of the contentious markers.
func hasContentiousKeyword(keywords []string) bool {
	for _, kw := range keywords {
		lower := strings.ToLower(strings.TrimSpace(kw))
		for _, marker := range contentiousKeywords {
			if lower == marker {
				return true
			}
		}
	}
	return false
}

// isStatisticalType reports whether the claim type indicates a
// statistical or numerical claim.
func isStatisticalType(t model.ClaimType) bool {
	return t == model.ClaimTypeStatistical || t == model.ClaimTypeNumerical
}

// isLowAmbiguityType reports whether the claim type qualifies for the
// cheap single-shot path.
func isLowAmbiguityType(t model.ClaimType) bool {
	switch t {
	case model.ClaimTypeFact, model.ClaimTypeHistorical,
		model.ClaimTypeBiographical, model.ClaimTypeScientific:
		return true
	default:
		return false
	}
}

// Route picks the verification strategy for a claim. Rules apply in
// priority order: agentic outranks simple, and everything that matches
// neither gets hybrid.
func Route(analysis model.ClaimAnalysis) model.Strategy {
	strategy := route(analysis)
	slog.Debug("routed claim",
		"strategy", strategy,
		"type", analysis.Type,
		"temporality", analysis.Temporality,
		"complexity", analysis.Complexity)
	return strategy
}

func route(analysis model.ClaimAnalysis) model.Strategy {
	// Expensive iterative investigation for claims where single-shot
	// retrieval is likely insufficient.
	if analysis.Complexity == model.ComplexityComplex ||
		len(analysis.Entities) > 3 ||
		(analysis.Temporality == model.TemporalityCurrent && analysis.IsRecent) ||
		isStatisticalType(analysis.Type) ||
		hasContentiousKeyword(analysis.Keywords) {
		return model.StrategyAgentic
	}

	// Cheap fast path for low-ambiguity, low-entity claims.
	if (analysis.Temporality == model.TemporalityTimeless || analysis.Temporality == model.TemporalityHistorical) &&
		analysis.Complexity == model.ComplexitySimple &&
		len(analysis.Entities) <= 1 &&
		isLowAmbiguityType(analysis.Type) {
		return model.StrategySimple
	}

	return model.StrategyHybrid
}

// StrategyConfigFor returns the fixed parameter table for a strategy,
// plus advisory prioritization flags derived from the claim's
// temporality. The flags never change the numeric fields.
func StrategyConfigFor(strategy model.Strategy, analysis model.ClaimAnalysis) model.StrategyConfig {
	var cfg model.StrategyConfig

	switch strategy {
	case model.StrategySimple:
		cfg = model.StrategyConfig{
			UseVectorSearch: true,
			UseWebSearch:    false,
			MaxSources:      5,
			TimeoutMs:       10000,
		}
	case model.StrategyAgentic:
		cfg = model.StrategyConfig{
			UseVectorSearch: true,
			UseWebSearch:    true,
			UseAgent:        true,
			MaxSources:      10,
			MaxIterations:   5,
			TimeoutMs:       30000,
		}
	default: // hybrid
		cfg = model.StrategyConfig{
			UseVectorSearch: true,
			UseWebSearch:    true,
			MaxSources:      8,
			TimeoutMs:       15000,
		}
	}

	switch analysis.Temporality {
	case model.TemporalityCurrent:
		cfg.PrioritizeWebSearch = true
	case model.TemporalityHistorical, model.TemporalityTimeless:
		cfg.PrioritizeKnowledgeBase = true
	}

	return cfg
}
