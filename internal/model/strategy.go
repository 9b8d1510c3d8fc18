package model

import "strings"

// Strategy is one of three fixed verification intensity levels.
type Strategy string

const (
	StrategySimple  Strategy = "simple"
	StrategyHybrid  Strategy = "hybrid"
	StrategyAgentic Strategy = "agentic"
)

// ParseStrategy normalizes a strategy string. The boolean reports whether
// the input named a known strategy.
func ParseStrategy(s string) (Strategy, bool) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategySimple, StrategyHybrid, StrategyAgentic:
		return st, true
	default:
		return "", false
	}
}

// StrategyConfig carries the retrieval parameters for a chosen strategy.
// The numeric fields are a pure function of the strategy; the two
// prioritization flags are advisory adjustments from the claim's
// temporality and never change the numbers.
type StrategyConfig struct {
	UseVectorSearch bool `json:"use_vector_search"`
	UseWebSearch    bool `json:"use_web_search"`
	UseAgent        bool `json:"use_agent"`
	MaxSources      int  `json:"max_sources"`
	MaxIterations   int  `json:"max_iterations"` // agentic only
	TimeoutMs       int  `json:"timeout_ms"`

	PrioritizeWebSearch     bool `json:"prioritize_web_search,omitempty"`
	PrioritizeKnowledgeBase bool `json:"prioritize_knowledge_base,omitempty"`
}
