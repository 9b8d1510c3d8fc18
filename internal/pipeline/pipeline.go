// Package pipeline sequences the verification stages: classify, route,
// retrieve, assess, generate, critique, correct. The sequence is
// single-pass with no backtracking; correction touches only the verdict
// object and never re-triggers retrieval.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"veracity/internal/critique"
	"veracity/internal/model"
	"veracity/internal/retrieve"
	"veracity/internal/route"
)

// Classifier derives a ClaimAnalysis from a raw claim.
type Classifier interface {
	Classify(ctx context.Context, claim string) (model.ClaimAnalysis, error)
}

// Router picks a strategy and its parameters.
type Router interface {
	Route(analysis model.ClaimAnalysis) model.Strategy
	StrategyConfigFor(strategy model.Strategy, analysis model.ClaimAnalysis) model.StrategyConfig
}

// Retriever pulls evidence per strategy.
type Retriever interface {
	Retrieve(ctx context.Context, claim string, analysis model.ClaimAnalysis, cfg model.StrategyConfig) retrieve.Result
}

// Assessor scores evidence sufficiency.
type Assessor interface {
	Assess(evidence []model.EvidenceRecord, analysis model.ClaimAnalysis) model.SufficiencyAssessment
}

// Generator produces the verdict.
type Generator interface {
	Generate(ctx context.Context, claim string, evidence []model.EvidenceRecord) (model.Verdict, error)
}

// Auditor critiques the verdict.
type Auditor interface {
	Critique(ctx context.Context, claim string, v model.Verdict, evidence []model.EvidenceRecord) model.CritiqueResult
}

// Dependencies are the explicitly constructed collaborators the pipeline
// holds. Everything is injected so tests can substitute fakes.
type Dependencies struct {
	Classifier Classifier
	Router     Router
	Retriever  Retriever
	Assessor   Assessor
	Generator  Generator
	Auditor    Auditor
}

// Pipeline is the single public entry point for claim verification.
type Pipeline struct {
	deps            Dependencies
	includeEvidence bool
}

// New creates a pipeline from explicit dependencies.
func New(deps Dependencies) *Pipeline {
	return &Pipeline{deps: deps}
}

// IncludeEvidence controls whether the finalized evidence set is echoed
// in results (useful for CLI output, noisy for API callers).
func (p *Pipeline) IncludeEvidence(include bool) {
	p.includeEvidence = include
}

// Verify runs the full verification sequence for one claim.
func (p *Pipeline) Verify(ctx context.Context, req model.VerifyRequest) (*model.VerifyResult, error) {
	claim := strings.TrimSpace(req.Claim)
	if claim == "" {
		return nil, fmt.Errorf("%w: claim is required", ErrEmptyClaim)
	}

	requestID := uuid.NewString()
	log := slog.With("request_id", requestID)

	fullClaim := claim
	if strings.TrimSpace(req.Context) != "" {
		fullClaim = claim + "\nContext: " + strings.TrimSpace(req.Context)
	}

	// 1. Classify. Classifier failure never fails the request; the safe
	// default analysis keeps the pipeline moving.
	analysis, err := p.deps.Classifier.Classify(ctx, fullClaim)
	if err != nil {
		log.Warn("classifier failed, using default analysis", "error", err)
		analysis = model.DefaultAnalysis(claim)
	}

	// 2. Route, or honor a caller-forced strategy.
	var strategy model.Strategy
	forced := false
	if req.ForceStrategy != "" {
		s, ok := model.ParseStrategy(req.ForceStrategy)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, req.ForceStrategy)
		}
		strategy = s
		forced = true
	} else {
		strategy = p.deps.Router.Route(analysis)
	}

	cfg := p.deps.Router.StrategyConfigFor(strategy, analysis)
	if !req.WebSearchEnabled() {
		cfg.UseWebSearch = false
	}
	if !req.VectorSearchEnabled() {
		cfg.UseVectorSearch = false
	}

	// The strategy timeout bounds everything downstream; expiry fails
	// the whole call rather than returning a partial verdict.
	if cfg.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	// 3. Retrieve evidence per strategy.
	retrieved := p.deps.Retriever.Retrieve(ctx, fullClaim, analysis, cfg)

	// 4. Assess sufficiency. Advisory: logged and surfaced, not a gate.
	sufficiency := p.deps.Assessor.Assess(retrieved.Evidence, analysis)
	if !sufficiency.IsSufficient {
		log.Info("evidence assessed as insufficient, proceeding anyway",
			"score", sufficiency.Score,
			"recommendation", sufficiency.Recommendation)
	}

	// 5. Generate the verdict. The one genuinely fatal path.
	v, err := p.deps.Generator.Generate(ctx, fullClaim, retrieved.Evidence)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerdictGeneration, err)
	}

	// 6. Critique and conditionally correct.
	var critiqueResult *model.CritiqueResult
	corrected := false
	if req.CritiqueEnabled() && p.deps.Auditor != nil {
		cr := p.deps.Auditor.Critique(ctx, fullClaim, v, retrieved.Evidence)
		critiqueResult = &cr
		if critique.ShouldRegenerate(cr) {
			v = critique.Correct(v, cr)
			corrected = true
			log.Info("verdict corrected after critique", "issues", len(cr.Issues))
		}
	}

	result := &model.VerifyResult{
		RequestID:      requestID,
		Claim:          claim,
		CheckedAt:      time.Now().UTC(),
		Verdict:        v,
		Analysis:       analysis,
		Strategy:       strategy,
		StrategyForced: forced,
		StrategyConfig: cfg,
		EvidenceCount:  len(retrieved.Evidence),
		AgentTrace:     retrieved.Trace,
		Sufficiency:    &sufficiency,
		Critique:       critiqueResult,
		Corrected:      corrected,
	}
	if p.includeEvidence {
		result.Evidence = retrieved.Evidence
	}

	log.Info("claim verified",
		"strategy", strategy,
		"verdict", v.Verdict,
		"confidence", v.Confidence,
		"evidence", len(retrieved.Evidence),
		"corrected", corrected)

	return result, nil
}

// DefaultRouter adapts the route package's pure functions to the Router
// interface.
type DefaultRouter struct{}

// Route delegates to route.Route.
func (DefaultRouter) Route(analysis model.ClaimAnalysis) model.Strategy {
	return route.Route(analysis)
}

// StrategyConfigFor delegates to route.StrategyConfigFor.
func (DefaultRouter) StrategyConfigFor(strategy model.Strategy, analysis model.ClaimAnalysis) model.StrategyConfig {
	return route.StrategyConfigFor(strategy, analysis)
}
