package retrieve

import (
	"context"
	"log/slog"

	"veracity/internal/evidence"
	"veracity/internal/model"
)

// earlyStopThreshold ends the agent loop once this much evidence has
// accumulated; remaining planned tools are skipped.
const earlyStopThreshold = 5

// agentState is the explicit state of the iterative retrieval loop.
type agentState int

const (
	statePlanning agentState = iota
	stateExecuting
	stateEarlyStop
	stateDone
)

// plannedTool is one step of the tool sequence computed during planning.
type plannedTool struct {
	name   string
	source evidence.Source
	params evidence.SearchParams
}

// runAgent executes the bounded tool-use loop: plan a fixed tool sequence
// from the claim's temporality, then run the tools one at a time. Tool
// failures are logged and skipped; the loop ends when the sequence is
// exhausted, the iteration cap is hit, or enough evidence accumulated.
func (o *Orchestrator) runAgent(ctx context.Context, claim string, analysis model.ClaimAnalysis, cfg model.StrategyConfig) ([]model.EvidenceRecord, []model.AgentStep) {
	sequence := o.planTools(claim, analysis) // planning phase
	state := stateExecuting

	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 || maxIterations > len(sequence) {
		maxIterations = len(sequence)
	}

	var collected []model.EvidenceRecord
	trace := make([]model.AgentStep, 0, maxIterations)

	for i := 0; i < maxIterations && state == stateExecuting; i++ {
		tool := sequence[i]

		records, err := tool.source.Search(ctx, claim, tool.params)
		step := model.AgentStep{
			Tool:        tool.name,
			Input:       claim,
			Success:     err == nil,
			ResultCount: len(records),
		}
		trace = append(trace, step)

		if err != nil {
			slog.Warn("agent tool failed", "tool", tool.name, "error", err)
			continue
		}

		collected = append(collected, records...)
		if len(collected) >= earlyStopThreshold {
			state = stateEarlyStop
		}
	}

	if state == stateExecuting {
		state = stateDone
	}

	slog.Debug("agent loop finished",
		"steps", len(trace),
		"evidence", len(collected),
		"early_stop", state == stateEarlyStop)

	return collected, trace
}

// planTools computes the fixed tool sequence. The knowledge base always
// leads; the web tools follow based on temporality, and complex claims
// get both web windows regardless.
func (o *Orchestrator) planTools(claim string, analysis model.ClaimAnalysis) []plannedTool {
	var sequence []plannedTool

	if o.sources.KnowledgeBase != nil {
		sequence = append(sequence, plannedTool{
			name:   "knowledge_base",
			source: o.sources.KnowledgeBase,
			params: evidence.SearchParams{Limit: 5},
		})
	}

	webParams := evidence.SearchParams{Entities: analysis.Entities}

	wantCurrent := false
	wantHistorical := false
	switch analysis.Temporality {
	case model.TemporalityCurrent, model.TemporalityRecent:
		wantCurrent = true
	case model.TemporalityHistorical, model.TemporalityTimeless:
		wantHistorical = true
	default:
		wantCurrent = true
		wantHistorical = true
	}
	if analysis.Complexity == model.ComplexityComplex {
		wantCurrent = true
		wantHistorical = true
	}

	if wantCurrent && o.sources.WebCurrent != nil {
		sequence = append(sequence, plannedTool{
			name:   "web_search_current",
			source: o.sources.WebCurrent,
			params: webParams,
		})
	}
	if wantHistorical && o.sources.WebHistorical != nil {
		sequence = append(sequence, plannedTool{
			name:   "web_search_historical",
			source: o.sources.WebHistorical,
			params: webParams,
		})
	}

	return sequence
}
