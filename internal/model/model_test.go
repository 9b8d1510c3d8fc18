package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input    string
		expected Strategy
		ok       bool
	}{
		{"simple", StrategySimple, true},
		{"HYBRID", StrategyHybrid, true},
		{"  Agentic  ", StrategyAgentic, true},
		{"thorough", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseStrategy(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseStrategy(%q) = (%q, %v), expected (%q, %v)",
				tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestParseVerdictLabel(t *testing.T) {
	if got := ParseVerdictLabel("true"); got != VerdictTrue {
		t.Errorf("expected TRUE, got %s", got)
	}
	if got := ParseVerdictLabel(" partially_true "); got != VerdictPartiallyTrue {
		t.Errorf("expected PARTIALLY_TRUE, got %s", got)
	}
	if got := ParseVerdictLabel("MOSTLY_TRUE"); got != VerdictNotEnoughEvidence {
		t.Errorf("unknown labels must map to NOT_ENOUGH_EVIDENCE, got %s", got)
	}
}

func TestCredibilityTier_Weight(t *testing.T) {
	tests := []struct {
		tier   CredibilityTier
		weight float64
	}{
		{CredibilityHigh, 1.0},
		{CredibilityMedium, 0.7},
		{CredibilityLow, 0.4},
		{CredibilityVeryLow, 0.2},
		{CredibilityUnknown, 0.5},
	}

	for _, tt := range tests {
		if got := tt.tier.Weight(); got != tt.weight {
			t.Errorf("%s: expected weight %f, got %f", tt.tier, tt.weight, got)
		}
	}
}

func TestCredibilityTier_JSONRoundTrip(t *testing.T) {
	for _, tier := range []CredibilityTier{
		CredibilityUnknown, CredibilityVeryLow, CredibilityLow,
		CredibilityMedium, CredibilityHigh,
	} {
		data, err := json.Marshal(tier)
		if err != nil {
			t.Fatalf("marshal %s: %v", tier, err)
		}
		var back CredibilityTier
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != tier {
			t.Errorf("round trip changed %s to %s", tier, back)
		}
	}
}

func TestParseCredibility_Default(t *testing.T) {
	if got := ParseCredibility("pretty good"); got != CredibilityMedium {
		t.Errorf("unrated sources default to medium, got %s", got)
	}
}

func TestEvidenceRecord_DedupKey(t *testing.T) {
	long := strings.Repeat("a", 150)
	rec := EvidenceRecord{URL: "https://example.com", Snippet: long}

	key := rec.DedupKey()
	if key != "https://example.com::"+long[:100] {
		t.Errorf("unexpected key %q", key)
	}

	// Records sharing the 100-char prefix collide.
	other := rec
	other.Snippet = long[:100] + "different tail"
	if other.DedupKey() != key {
		t.Error("expected a prefix collision")
	}

	short := EvidenceRecord{URL: "https://example.com", Snippet: "short"}
	if short.DedupKey() != "https://example.com::short" {
		t.Errorf("unexpected key %q", short.DedupKey())
	}
}

func TestVerifyRequest_Toggles(t *testing.T) {
	var req VerifyRequest
	if !req.WebSearchEnabled() || !req.VectorSearchEnabled() || !req.CritiqueEnabled() {
		t.Error("unset toggles must default to enabled")
	}

	f := false
	req.UseWebSearch = &f
	req.EnableCritique = &f
	if req.WebSearchEnabled() {
		t.Error("expected web search disabled")
	}
	if req.CritiqueEnabled() {
		t.Error("expected critique disabled")
	}
	if !req.VectorSearchEnabled() {
		t.Error("vector search should stay enabled")
	}
}

func TestDefaultAnalysis(t *testing.T) {
	got := DefaultAnalysis("some claim")

	if got.Type != ClaimTypeFact || got.Temporality != TemporalityTimeless || got.Complexity != ComplexitySimple {
		t.Errorf("unexpected default analysis: %+v", got)
	}
	if len(got.Keywords) != 1 || got.Keywords[0] != "some claim" {
		t.Errorf("the claim itself should be the only keyword, got %v", got.Keywords)
	}
	if got.Entities == nil {
		t.Error("entities must be an empty slice, not nil")
	}
}
