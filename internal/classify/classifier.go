// Package classify derives a ClaimAnalysis from a raw claim using the
// structured-completion capability. Classification failure never fails a
// verification request: the caller falls back to a safe default analysis.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"veracity/internal/llm"
	"veracity/internal/model"
)

const classifierSystem = "You are a claim classification assistant for a fact-checking pipeline. You respond only with a JSON object."

// Classifier classifies claims via the completion capability.
type Classifier struct {
	completer   llm.Completer
	temperature float32
}

// NewClassifier creates a new classifier.
func NewClassifier(completer llm.Completer, temperature float32) *Classifier {
	return &Classifier{
		completer:   completer,
		temperature: temperature,
	}
}

// rawAnalysis is the wire shape the completion emits.
type rawAnalysis struct {
	Type        string   `json:"type"`
	Entities    []string `json:"entities"`
	Keywords    []string `json:"keywords"`
	Temporality string   `json:"temporality"`
	Complexity  string   `json:"complexity"`
	IsRecent    bool     `json:"is_recent"`
}

// Classify derives the claim's analysis. Errors are returned so the
// caller can log them, but the caller is expected to substitute
// model.DefaultAnalysis and continue.
func (c *Classifier) Classify(ctx context.Context, claim string) (model.ClaimAnalysis, error) {
	if c.completer == nil {
		return model.ClaimAnalysis{}, fmt.Errorf("no completion provider configured")
	}

	prompt := buildClassifyPrompt(claim)

	payload, err := c.completer.Complete(ctx, llm.CompletionRequest{
		System:      classifierSystem,
		Prompt:      prompt,
		Temperature: c.temperature,
		MaxTokens:   500,
	})
	if err != nil {
		return model.ClaimAnalysis{}, fmt.Errorf("classify claim: %w", err)
	}

	var raw rawAnalysis
	if err := json.Unmarshal(payload, &raw); err != nil {
		return model.ClaimAnalysis{}, fmt.Errorf("parse classification: %w", err)
	}

	analysis := model.ClaimAnalysis{
		Type:        model.ParseClaimType(raw.Type),
		Entities:    raw.Entities,
		Keywords:    raw.Keywords,
		Temporality: model.ParseTemporality(raw.Temporality),
		Complexity:  model.ParseComplexity(raw.Complexity),
		IsRecent:    raw.IsRecent,
	}
	if analysis.Entities == nil {
		analysis.Entities = []string{}
	}
	if analysis.Keywords == nil {
		analysis.Keywords = []string{}
	}

	slog.Debug("classified claim",
		"type", analysis.Type,
		"temporality", analysis.Temporality,
		"complexity", analysis.Complexity,
		"entities", len(analysis.Entities))

	return analysis, nil
}

func buildClassifyPrompt(claim string) string {
	return fmt.Sprintf(`Classify the following factual claim for a verification pipeline.

Claim: %q

Respond with a JSON object:
{
  "type": "fact|opinion|prediction|news|historical|biographical|scientific|statistical|numerical",
  "entities": ["named entities mentioned, in order of appearance"],
  "keywords": ["key terms useful for searching, in order of importance"],
  "temporality": "timeless|historical|recent|current",
  "complexity": "simple|moderate|complex",
  "is_recent": true or false (does the claim concern events from the last few weeks?)
}

Guidance:
- "statistical" or "numerical" for claims resting on figures, percentages, or counts.
- "current" temporality for ongoing or breaking situations, "recent" for the last year or so.
- "complex" when verifying requires reconciling multiple facts or entities.

Only respond with the JSON object, no other text.`, claim)
}
