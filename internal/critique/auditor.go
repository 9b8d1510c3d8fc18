// Package critique audits a generated verdict against its evidence using
// a second, colder completion call, and applies a single bounded
// correction pass when critical issues surface. The critique stage fails
// open: its own infrastructure failures never block the pipeline.
package critique

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"veracity/internal/llm"
	"veracity/internal/model"
	"veracity/internal/verdict"
)

const auditorSystem = "You are a quality auditor for fact-check verdicts. You verify citations, reasoning, and confidence calibration against the evidence with cold precision. You respond only with a JSON object."

// Confidence adjustments applied by the correction pass.
const (
	confidenceStep  = 0.2
	confidenceFloor = 0.3
	confidenceCeil  = 0.9
)

// Auditor critiques and corrects verdicts.
type Auditor struct {
	completer   llm.Completer
	temperature float32
}

// NewAuditor creates an auditor. Temperature should be low; QA judgments
// favor determinism.
func NewAuditor(completer llm.Completer, temperature float32) *Auditor {
	return &Auditor{
		completer:   completer,
		temperature: temperature,
	}
}

// rawCritique is the wire shape the completion emits.
type rawCritique struct {
	IsValid           bool       `json:"is_valid"`
	Confidence        float64    `json:"confidence"`
	Issues            []rawIssue `json:"issues"`
	Suggestions       []string   `json:"suggestions"`
	OverallAssessment string     `json:"overall_assessment"`
}

type rawIssue struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// Critique validates the verdict against the evidence. On any completion
// failure it fails open with a permissive default so the pipeline
// proceeds with the original verdict.
func (a *Auditor) Critique(ctx context.Context, claim string, v model.Verdict, evidence []model.EvidenceRecord) model.CritiqueResult {
	result, err := a.critique(ctx, claim, v, evidence)
	if err != nil {
		slog.Warn("critique failed, proceeding with original result", "error", err)
		return model.CritiqueResult{
			IsValid:     true,
			Confidence:  0.5,
			Issues:      []model.CritiqueIssue{},
			Suggestions: []string{"Critique agent failed — proceeding with original result"},
		}
	}
	return result
}

func (a *Auditor) critique(ctx context.Context, claim string, v model.Verdict, evidence []model.EvidenceRecord) (model.CritiqueResult, error) {
	if a.completer == nil {
		return model.CritiqueResult{}, fmt.Errorf("no completion provider configured")
	}

	verdictJSON, err := json.Marshal(v)
	if err != nil {
		return model.CritiqueResult{}, fmt.Errorf("marshal verdict: %w", err)
	}

	prompt := buildCritiquePrompt(claim, string(verdictJSON), evidence)

	payload, err := a.completer.Complete(ctx, llm.CompletionRequest{
		System:      auditorSystem,
		Prompt:      prompt,
		Temperature: a.temperature,
		MaxTokens:   1500,
	})
	if err != nil {
		return model.CritiqueResult{}, fmt.Errorf("critique verdict: %w", err)
	}

	var raw rawCritique
	if err := json.Unmarshal(payload, &raw); err != nil {
		return model.CritiqueResult{}, fmt.Errorf("parse critique: %w", err)
	}

	result := model.CritiqueResult{
		IsValid:           raw.IsValid,
		Confidence:        raw.Confidence,
		Issues:            make([]model.CritiqueIssue, 0, len(raw.Issues)),
		Suggestions:       raw.Suggestions,
		OverallAssessment: raw.OverallAssessment,
	}
	for _, issue := range raw.Issues {
		result.Issues = append(result.Issues, model.CritiqueIssue{
			Type:        model.CritiqueIssueType(strings.ToLower(issue.Type)),
			Severity:    model.IssueSeverity(strings.ToLower(issue.Severity)),
			Description: issue.Description,
		})
	}
	return result, nil
}

// ShouldRegenerate reports whether the correction pass applies: the
// critique judged the verdict invalid and flagged at least one critical
// issue.
func ShouldRegenerate(critique model.CritiqueResult) bool {
	if critique.IsValid {
		return false
	}
	for _, issue := range critique.Issues {
		if issue.Severity == model.SeverityCritical {
			return true
		}
	}
	return false
}

// Correct applies the single bounded correction pass. It is deterministic
// and local: no further completion call, no retry loop back into
// generation, and citation indices are never rewritten.
func Correct(v model.Verdict, critique model.CritiqueResult) model.Verdict {
	for _, issue := range critique.Issues {
		if issue.Severity != model.SeverityCritical {
			continue
		}

		switch issue.Type {
		case model.IssueConfidenceMiscalibrated:
			desc := strings.ToLower(issue.Description)
			if strings.Contains(desc, "too high") {
				v.Confidence = maxFloat(v.Confidence-confidenceStep, confidenceFloor)
			} else if strings.Contains(desc, "too low") {
				v.Confidence = minFloat(v.Confidence+confidenceStep, confidenceCeil)
			}

		case model.IssueVerdictUnsupported:
			v.Verdict = model.VerdictNotEnoughEvidence
			v.Reasoning += "\n\nNote: the original verdict was not adequately supported by the evidence and has been downgraded."

		case model.IssueHallucination:
			// Drop citations whose title the issue description names.
			// Fragile substring heuristic, preserved for parity.
			kept := v.Citations[:0:0]
			for _, c := range v.Citations {
				if c.Title != "" && strings.Contains(issue.Description, c.Title) {
					slog.Debug("dropping hallucinated citation", "title", c.Title)
					continue
				}
				kept = append(kept, c)
			}
			v.Citations = kept
		}
	}
	return v
}

func buildCritiquePrompt(claim, verdictJSON string, evidence []model.EvidenceRecord) string {
	return fmt.Sprintf(`Audit this fact-check verdict against the evidence it was generated from.

Claim: %q

Verdict under review:
%s

Evidence:
%s
Check for:
1. Citation validity: does every citation reference a real evidence index in range?
2. Reasoning coherence: does the reasoning follow from the cited evidence?
3. Verdict support: does the evidence actually support the chosen verdict?
4. Confidence calibration: is the confidence too high or too low for the evidence? Say "too high" or "too low" in the description.
5. Hallucination: are any cited sources or facts fabricated? Name the fabricated citation title in the description.

Respond with a JSON object:
{
  "is_valid": true or false,
  "confidence": 0.0-1.0 (confidence in this critique),
  "issues": [{"type": "invalid_citation|reasoning_flaw|verdict_unsupported|confidence_miscalibrated|hallucination|evidence_misrepresented|contradiction_ignored", "severity": "critical|major|minor", "description": "..."}],
  "suggestions": ["..."],
  "overall_assessment": "one-paragraph summary"
}

Only respond with the JSON object, no other text.`, claim, verdictJSON, verdict.FormatEvidence(evidence))
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
