package model

import "time"

// SufficiencyAssessment scores an evidence set against a claim's analysis.
// It is advisory telemetry: computed once per request after retrieval,
// surfaced in the result, and never a gate on verdict generation.
type SufficiencyAssessment struct {
	IsSufficient   bool     `json:"is_sufficient"`
	Score          float64  `json:"score"` // 0.3*quantity + 0.7*quality
	Quantity       float64  `json:"quantity"`
	Quality        float64  `json:"quality"`
	Relevance      float64  `json:"relevance"`
	Credibility    float64  `json:"credibility"`
	MissingAspects []string `json:"missing_aspects,omitempty"`
	Recommendation string   `json:"recommendation"`
}

// VerifyRequest is the single outward-facing operation's input.
type VerifyRequest struct {
	Claim           string `json:"claim"`
	Context         string `json:"context,omitempty"`
	UseWebSearch    *bool  `json:"use_web_search,omitempty"`    // default true
	UseVectorSearch *bool  `json:"use_vector_search,omitempty"` // default true
	ForceStrategy   string `json:"force_strategy,omitempty"`    // simple|hybrid|agentic
	EnableCritique  *bool  `json:"enable_critique,omitempty"`   // default true
}

// WebSearchEnabled resolves the pointer-with-default field.
func (r VerifyRequest) WebSearchEnabled() bool {
	return r.UseWebSearch == nil || *r.UseWebSearch
}

// VectorSearchEnabled resolves the pointer-with-default field.
func (r VerifyRequest) VectorSearchEnabled() bool {
	return r.UseVectorSearch == nil || *r.UseVectorSearch
}

// CritiqueEnabled resolves the pointer-with-default field.
func (r VerifyRequest) CritiqueEnabled() bool {
	return r.EnableCritique == nil || *r.EnableCritique
}

// AgentStep is one entry in the agentic loop's observability trace.
type AgentStep struct {
	Tool        string `json:"tool"`
	Input       string `json:"input"`
	Success     bool   `json:"success"`
	ResultCount int    `json:"result_count"`
}

// VerifyResult merges the (possibly corrected) verdict with the analysis,
// strategy metadata, sufficiency summary, and critique summary.
type VerifyResult struct {
	RequestID string    `json:"request_id"`
	Claim     string    `json:"claim"`
	CheckedAt time.Time `json:"checked_at"`

	Verdict Verdict `json:"result"`

	Analysis       ClaimAnalysis          `json:"analysis"`
	Strategy       Strategy               `json:"strategy"`
	StrategyForced bool                   `json:"strategy_forced,omitempty"`
	StrategyConfig StrategyConfig         `json:"strategy_config"`
	EvidenceCount  int                    `json:"evidence_count"`
	Evidence       []EvidenceRecord       `json:"evidence,omitempty"`
	AgentTrace     []AgentStep            `json:"agent_trace,omitempty"`
	Sufficiency    *SufficiencyAssessment `json:"sufficiency,omitempty"`
	Critique       *CritiqueResult        `json:"critique,omitempty"`
	Corrected      bool                   `json:"corrected,omitempty"`
}
