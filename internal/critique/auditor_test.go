package critique

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"veracity/internal/llm"
	"veracity/internal/model"
)

type fakeCompleter struct {
	payload []byte
	err     error
	lastReq llm.CompletionRequest
}

func (f *fakeCompleter) Name() string { return "fake" }

func (f *fakeCompleter) Complete(_ context.Context, req llm.CompletionRequest) ([]byte, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func (f *fakeCompleter) IsAvailable(_ context.Context) bool { return f.err == nil }

func sampleVerdict() model.Verdict {
	return model.Verdict{
		Verdict:    model.VerdictTrue,
		Confidence: 0.9,
		Reasoning:  "Supported by [1].",
		Citations: []model.Citation{
			{Index: 1, Title: "Eiffel Tower", URL: model.KnowledgeBaseURL, Relevance: "direct"},
		},
	}
}

func TestCritique(t *testing.T) {
	completer := &fakeCompleter{payload: []byte(`{
		"is_valid": false,
		"confidence": 0.85,
		"issues": [
			{"type": "Confidence_Miscalibrated", "severity": "CRITICAL", "description": "confidence is too high for a single source"}
		],
		"suggestions": ["retrieve more sources"],
		"overall_assessment": "verdict rests on one source"
	}`)}

	a := NewAuditor(completer, 0.1)

	got := a.Critique(context.Background(), "claim", sampleVerdict(), nil)

	if got.IsValid {
		t.Error("expected is_valid=false")
	}
	if len(got.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(got.Issues))
	}
	// Issue type and severity are normalized to lowercase.
	if got.Issues[0].Type != model.IssueConfidenceMiscalibrated {
		t.Errorf("expected normalized issue type, got %s", got.Issues[0].Type)
	}
	if got.Issues[0].Severity != model.SeverityCritical {
		t.Errorf("expected normalized severity, got %s", got.Issues[0].Severity)
	}
	if completer.lastReq.Temperature != 0.1 {
		t.Errorf("expected critique temperature 0.1, got %f", completer.lastReq.Temperature)
	}
}

func TestCritique_FailsOpen(t *testing.T) {
	a := NewAuditor(&fakeCompleter{err: errors.New("provider down")}, 0.1)

	got := a.Critique(context.Background(), "claim", sampleVerdict(), nil)

	if !got.IsValid {
		t.Error("critique failure must fail open with a valid result")
	}
	if got.Confidence != 0.5 {
		t.Errorf("expected fail-open confidence 0.5, got %f", got.Confidence)
	}
	if len(got.Issues) != 0 {
		t.Errorf("fail-open result must carry no issues, got %v", got.Issues)
	}
	if len(got.Suggestions) != 1 || !strings.Contains(got.Suggestions[0], "Critique agent failed") {
		t.Errorf("expected the fail-open suggestion, got %v", got.Suggestions)
	}
}

func TestCritique_MalformedPayloadFailsOpen(t *testing.T) {
	a := NewAuditor(&fakeCompleter{payload: []byte("garbage")}, 0.1)

	got := a.Critique(context.Background(), "claim", sampleVerdict(), nil)

	if !got.IsValid {
		t.Error("malformed critique payload must fail open")
	}
}

func TestShouldRegenerate(t *testing.T) {
	tests := []struct {
		name     string
		critique model.CritiqueResult
		expected bool
	}{
		{
			name:     "valid verdict never regenerates",
			critique: model.CritiqueResult{IsValid: true, Issues: []model.CritiqueIssue{{Severity: model.SeverityCritical}}},
			expected: false,
		},
		{
			name:     "invalid without critical issues",
			critique: model.CritiqueResult{IsValid: false, Issues: []model.CritiqueIssue{{Severity: model.SeverityMajor}, {Severity: model.SeverityMinor}}},
			expected: false,
		},
		{
			name:     "invalid with a critical issue",
			critique: model.CritiqueResult{IsValid: false, Issues: []model.CritiqueIssue{{Severity: model.SeverityMinor}, {Severity: model.SeverityCritical}}},
			expected: true,
		},
		{
			name:     "invalid with no issues at all",
			critique: model.CritiqueResult{IsValid: false},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldRegenerate(tt.critique); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCorrect_ConfidenceTooHigh(t *testing.T) {
	v := sampleVerdict()
	v.Confidence = 0.9

	got := Correct(v, model.CritiqueResult{
		IsValid: false,
		Issues: []model.CritiqueIssue{{
			Type:        model.IssueConfidenceMiscalibrated,
			Severity:    model.SeverityCritical,
			Description: "confidence is too high for this evidence",
		}},
	})

	if math.Abs(got.Confidence-0.7) > 1e-9 {
		t.Errorf("expected confidence lowered to 0.7, got %f", got.Confidence)
	}
	if got.Verdict != model.VerdictTrue {
		t.Errorf("verdict label must not change, got %s", got.Verdict)
	}
}

func TestCorrect_ConfidenceFloorAndCeil(t *testing.T) {
	tooHigh := model.CritiqueIssue{
		Type:        model.IssueConfidenceMiscalibrated,
		Severity:    model.SeverityCritical,
		Description: "too high",
	}
	tooLow := model.CritiqueIssue{
		Type:        model.IssueConfidenceMiscalibrated,
		Severity:    model.SeverityCritical,
		Description: "too low",
	}

	v := sampleVerdict()
	v.Confidence = 0.35
	got := Correct(v, model.CritiqueResult{Issues: []model.CritiqueIssue{tooHigh}})
	if got.Confidence != 0.3 {
		t.Errorf("expected floor at 0.3, got %f", got.Confidence)
	}

	v.Confidence = 0.85
	got = Correct(v, model.CritiqueResult{Issues: []model.CritiqueIssue{tooLow}})
	if got.Confidence != 0.9 {
		t.Errorf("expected cap at 0.9, got %f", got.Confidence)
	}
}

func TestCorrect_ConfidenceVagueDescriptionUnchanged(t *testing.T) {
	v := sampleVerdict()
	v.Confidence = 0.8

	got := Correct(v, model.CritiqueResult{Issues: []model.CritiqueIssue{{
		Type:        model.IssueConfidenceMiscalibrated,
		Severity:    model.SeverityCritical,
		Description: "confidence seems off",
	}}})

	if got.Confidence != 0.8 {
		t.Errorf("descriptions naming no direction must not adjust confidence, got %f", got.Confidence)
	}
}

func TestCorrect_VerdictUnsupported(t *testing.T) {
	v := sampleVerdict()
	v.Confidence = 0.8

	got := Correct(v, model.CritiqueResult{Issues: []model.CritiqueIssue{{
		Type:        model.IssueVerdictUnsupported,
		Severity:    model.SeverityCritical,
		Description: "the evidence does not establish the claim",
	}}})

	if got.Verdict != model.VerdictNotEnoughEvidence {
		t.Errorf("expected downgrade to NOT_ENOUGH_EVIDENCE, got %s", got.Verdict)
	}
	if !strings.Contains(got.Reasoning, "downgraded") {
		t.Errorf("expected the downgrade note appended to reasoning, got %q", got.Reasoning)
	}
	// Only the verdict changes; confidence is untouched.
	if got.Confidence != 0.8 {
		t.Errorf("verdict_unsupported must not change confidence, got %f", got.Confidence)
	}
}

func TestCorrect_HallucinationDropsNamedCitation(t *testing.T) {
	v := sampleVerdict()
	v.Citations = []model.Citation{
		{Index: 1, Title: "Eiffel Tower", URL: model.KnowledgeBaseURL},
		{Index: 2, Title: "Fabricated study", URL: "https://nowhere.example"},
	}

	got := Correct(v, model.CritiqueResult{Issues: []model.CritiqueIssue{{
		Type:        model.IssueHallucination,
		Severity:    model.SeverityCritical,
		Description: `the citation "Fabricated study" does not correspond to any retrieved source`,
	}}})

	if len(got.Citations) != 1 {
		t.Fatalf("expected the named citation dropped, got %d citations", len(got.Citations))
	}
	if got.Citations[0].Title != "Eiffel Tower" {
		t.Errorf("wrong citation dropped: %+v", got.Citations)
	}
	// Surviving citation indices are never rewritten.
	if got.Citations[0].Index != 1 {
		t.Errorf("citation index must be preserved, got %d", got.Citations[0].Index)
	}
}

func TestCorrect_NonCriticalIssuesIgnored(t *testing.T) {
	v := sampleVerdict()

	got := Correct(v, model.CritiqueResult{Issues: []model.CritiqueIssue{{
		Type:        model.IssueVerdictUnsupported,
		Severity:    model.SeverityMajor,
		Description: "weakly supported",
	}}})

	if got.Verdict != v.Verdict || got.Confidence != v.Confidence {
		t.Errorf("non-critical issues must not modify the verdict: %+v", got)
	}
}
