// Package verdict turns a claim and its ranked evidence into a
// structured verdict via the completion capability. A failed completion
// here is fatal to the request: no sensible fallback verdict exists.
package verdict

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"veracity/internal/llm"
	"veracity/internal/model"
)

const generatorSystem = "You are a rigorous fact-checking analyst. You weigh evidence carefully, cite sources by index, and prefer NOT_ENOUGH_EVIDENCE over guessing. You respond only with a JSON object."

// Generator produces verdicts.
type Generator struct {
	completer   llm.Completer
	temperature float32
}

// NewGenerator creates a generator.
func NewGenerator(completer llm.Completer, temperature float32) *Generator {
	return &Generator{
		completer:   completer,
		temperature: temperature,
	}
}

// rawVerdict is the wire shape the completion emits.
type rawVerdict struct {
	Verdict        string        `json:"verdict"`
	Confidence     float64       `json:"confidence"`
	Reasoning      string        `json:"reasoning"`
	Citations      []rawCitation `json:"citations"`
	Contradictions []string      `json:"contradictions"`
}

type rawCitation struct {
	Index     int    `json:"index"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Relevance string `json:"relevance"`
}

// Generate invokes the completion once and post-processes citations.
// Citation indices are 1-based positions in the evidence array; for every
// in-range citation the evidence record's snippet and credibility are
// copied onto it. Out-of-range indices are left unfilled on purpose so
// the critique stage can detect them.
func (g *Generator) Generate(ctx context.Context, claim string, evidence []model.EvidenceRecord) (model.Verdict, error) {
	if g.completer == nil {
		return model.Verdict{}, fmt.Errorf("no completion provider configured")
	}

	prompt := buildVerdictPrompt(claim, evidence)

	payload, err := g.completer.Complete(ctx, llm.CompletionRequest{
		System:      generatorSystem,
		Prompt:      prompt,
		Temperature: g.temperature,
		MaxTokens:   2000,
	})
	if err != nil {
		return model.Verdict{}, fmt.Errorf("generate verdict: %w", err)
	}

	var raw rawVerdict
	if err := json.Unmarshal(payload, &raw); err != nil {
		return model.Verdict{}, fmt.Errorf("parse verdict: %w", err)
	}

	v := model.Verdict{
		Verdict:        model.ParseVerdictLabel(raw.Verdict),
		Confidence:     clamp01(raw.Confidence),
		Reasoning:      raw.Reasoning,
		Citations:      make([]model.Citation, 0, len(raw.Citations)),
		Contradictions: raw.Contradictions,
	}

	for _, rc := range raw.Citations {
		citation := model.Citation{
			Index:     rc.Index,
			Title:     rc.Title,
			URL:       rc.URL,
			Relevance: rc.Relevance,
		}
		if rc.Index >= 1 && rc.Index <= len(evidence) {
			rec := evidence[rc.Index-1]
			citation.Snippet = rec.Snippet
			citation.Credibility = rec.Credibility
		} else {
			slog.Warn("citation index out of range", "index", rc.Index, "evidence_count", len(evidence))
		}
		v.Citations = append(v.Citations, citation)
	}

	return v, nil
}

// FormatEvidence renders the ranked evidence list as indexed blocks. The
// 1-based index is the binding contract for citation validation.
func FormatEvidence(evidence []model.EvidenceRecord) string {
	if len(evidence) == 0 {
		return "(no evidence retrieved)"
	}

	var sb strings.Builder
	for i, e := range evidence {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, e.Title)
		fmt.Fprintf(&sb, "    Source: %s\n", e.URL)
		fmt.Fprintf(&sb, "    Content: %s\n", e.Snippet)
		fmt.Fprintf(&sb, "    Credibility: %s\n", e.Credibility)
		if e.RelatedVerdict != "" {
			fmt.Fprintf(&sb, "    Related Verdict: %s\n", e.RelatedVerdict)
		}
		if e.RelevanceScore != nil {
			fmt.Fprintf(&sb, "    Relevance Score: %.2f\n", *e.RelevanceScore)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func buildVerdictPrompt(claim string, evidence []model.EvidenceRecord) string {
	return fmt.Sprintf(`Fact-check the following claim against the numbered evidence.

Claim: %q

Evidence:
%s
Verdict rules:
- TRUE: credible evidence directly supports or strongly implies the claim.
- FALSE: credible evidence contradicts the claim.
- PARTIALLY_TRUE: the claim is true with caveats, or the evidence is mixed.
- NOT_ENOUGH_EVIDENCE: evidence is absent, weak, or irreconcilably contradictory. Prefer this over guessing.

Cite evidence by its bracketed index using [n] markers inside your reasoning.

Respond with a JSON object:
{
  "verdict": "TRUE|FALSE|PARTIALLY_TRUE|NOT_ENOUGH_EVIDENCE",
  "confidence": 0.0-1.0,
  "reasoning": "analysis with inline [n] citation markers",
  "citations": [{"index": n, "title": "...", "url": "...", "relevance": "why this source matters"}],
  "contradictions": ["any contradictions between sources, empty if none"]
}

Only respond with the JSON object, no other text.`, claim, FormatEvidence(evidence))
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
