package model

import "strings"

// ClaimAnalysis is the classifier's read-only view of a claim.
// It is derived once per verification request and never mutated.
type ClaimAnalysis struct {
	Type        ClaimType   `json:"type"`
	Entities    []string    `json:"entities"` // insertion order preserved
	Keywords    []string    `json:"keywords"` // insertion order preserved
	Temporality Temporality `json:"temporality"`
	Complexity  Complexity  `json:"complexity"`
	IsRecent    bool        `json:"is_recent"`
}

// ClaimType categorizes the nature of the claim.
// The classifier may emit values beyond the base four; the router
// recognizes the extended set, everything else falls through to the
// default strategy.
type ClaimType string

const (
	ClaimTypeFact         ClaimType = "fact"
	ClaimTypeOpinion      ClaimType = "opinion"
	ClaimTypePrediction   ClaimType = "prediction"
	ClaimTypeNews         ClaimType = "news"
	ClaimTypeHistorical   ClaimType = "historical"
	ClaimTypeBiographical ClaimType = "biographical"
	ClaimTypeScientific   ClaimType = "scientific"
	ClaimTypeStatistical  ClaimType = "statistical"
	ClaimTypeNumerical    ClaimType = "numerical"
)

// ParseClaimType normalizes a classifier-emitted type string.
// Unknown values default to fact so routing never fails.
func ParseClaimType(s string) ClaimType {
	switch t := ClaimType(strings.ToLower(strings.TrimSpace(s))); t {
	case ClaimTypeFact, ClaimTypeOpinion, ClaimTypePrediction, ClaimTypeNews,
		ClaimTypeHistorical, ClaimTypeBiographical, ClaimTypeScientific,
		ClaimTypeStatistical, ClaimTypeNumerical:
		return t
	default:
		return ClaimTypeFact
	}
}

// Temporality classifies how time-sensitive a claim is.
type Temporality string

const (
	TemporalityTimeless   Temporality = "timeless"
	TemporalityHistorical Temporality = "historical"
	TemporalityRecent     Temporality = "recent"
	TemporalityCurrent    Temporality = "current"
)

// ParseTemporality normalizes a temporality string, defaulting to timeless.
func ParseTemporality(s string) Temporality {
	switch t := Temporality(strings.ToLower(strings.TrimSpace(s))); t {
	case TemporalityTimeless, TemporalityHistorical, TemporalityRecent, TemporalityCurrent:
		return t
	default:
		return TemporalityTimeless
	}
}

// Complexity grades how much investigation a claim likely needs.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// ParseComplexity normalizes a complexity string, defaulting to moderate.
func ParseComplexity(s string) Complexity {
	switch c := Complexity(strings.ToLower(strings.TrimSpace(s))); c {
	case ComplexitySimple, ComplexityModerate, ComplexityComplex:
		return c
	default:
		return ComplexityModerate
	}
}

// DefaultAnalysis is the safe fallback used when the classifier is
// unavailable: a simple timeless fact with the claim itself as keyword.
func DefaultAnalysis(claim string) ClaimAnalysis {
	return ClaimAnalysis{
		Type:        ClaimTypeFact,
		Entities:    []string{},
		Keywords:    []string{claim},
		Temporality: TemporalityTimeless,
		Complexity:  ComplexitySimple,
		IsRecent:    false,
	}
}
