// Package assess scores a retrieved evidence set against a claim's
// analysis. The assessment is advisory telemetry: it is computed and
// surfaced but does not gate verdict generation.
package assess

import (
	"fmt"
	"strings"

	"veracity/internal/model"
)

// Weighting of the quality sub-scores and of quantity vs quality.
const (
	credibilityWeight = 0.4
	relevanceWeight   = 0.3
	diversityWeight   = 0.15
	coverageWeight    = 0.15

	quantityShare = 0.3
	qualityShare  = 0.7
)

// Sufficiency thresholds.
const (
	minSources       = 2
	scoreThreshold   = 0.6
	qualityThreshold = 0.6
)

// RecommendationNoSources is the fixed short-circuit recommendation for
// an empty evidence set.
const RecommendationNoSources = "NOT_ENOUGH_EVIDENCE — No sources available"

// Assessor decides if verification can proceed confidently.
type Assessor struct{}

// NewAssessor creates a new assessor.
func NewAssessor() *Assessor {
	return &Assessor{}
}

// Assess scores the evidence set. Pure function, no side effects.
func (a *Assessor) Assess(evidence []model.EvidenceRecord, analysis model.ClaimAnalysis) model.SufficiencyAssessment {
	if len(evidence) == 0 {
		return model.SufficiencyAssessment{
			IsSufficient:   false,
			Score:          0,
			MissingAspects: []string{"No evidence sources available"},
			Recommendation: RecommendationNoSources,
		}
	}

	quantity := minFloat(float64(len(evidence))/3.0, 1.0)
	credibility := meanCredibility(evidence)
	relevance := minFloat(meanSnippetLength(evidence)/200.0, 1.0)
	diversity := minFloat(float64(distinctSourceKinds(evidence))/2.0, 1.0)
	coverage := entityCoverage(evidence, analysis)

	quality := credibilityWeight*credibility +
		relevanceWeight*relevance +
		diversityWeight*diversity +
		coverageWeight*coverage

	score := quantityShare*quantity + qualityShare*quality

	sufficient := len(evidence) >= minSources &&
		score >= scoreThreshold &&
		quality >= qualityThreshold

	missing := missingAspects(evidence, analysis, coverage)

	return model.SufficiencyAssessment{
		IsSufficient:   sufficient,
		Score:          score,
		Quantity:       quantity,
		Quality:        quality,
		Relevance:      relevance,
		Credibility:    credibility,
		MissingAspects: missing,
		Recommendation: recommendation(sufficient, len(evidence), quality),
	}
}

func meanCredibility(evidence []model.EvidenceRecord) float64 {
	sum := 0.0
	for _, e := range evidence {
		sum += e.Credibility.Weight()
	}
	return sum / float64(len(evidence))
}

func meanSnippetLength(evidence []model.EvidenceRecord) float64 {
	sum := 0.0
	for _, e := range evidence {
		sum += float64(len(e.Snippet))
	}
	return sum / float64(len(evidence))
}

func distinctSourceKinds(evidence []model.EvidenceRecord) int {
	kinds := make(map[model.SourceKind]struct{})
	for _, e := range evidence {
		kinds[e.SourceKind] = struct{}{}
	}
	return len(kinds)
}

// entityCoverage is 1.0 except for complex claims, where it is the
// fraction of the claim's entities that appear in any evidence snippet or
// title (case-insensitive substring). Empty entity lists keep coverage
// at 1.0.
func entityCoverage(evidence []model.EvidenceRecord, analysis model.ClaimAnalysis) float64 {
	if analysis.Complexity != model.ComplexityComplex || len(analysis.Entities) == 0 {
		return 1.0
	}

	covered := 0
	for _, entity := range analysis.Entities {
		needle := strings.ToLower(entity)
		for _, e := range evidence {
			if strings.Contains(strings.ToLower(e.Snippet), needle) ||
				strings.Contains(strings.ToLower(e.Title), needle) {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(len(analysis.Entities))
}

func missingAspects(evidence []model.EvidenceRecord, analysis model.ClaimAnalysis, coverage float64) []string {
	var missing []string

	if len(evidence) < 3 {
		missing = append(missing, fmt.Sprintf("Only %d source(s) retrieved; at least 3 preferred", len(evidence)))
	}

	hasHigh := false
	for _, e := range evidence {
		if e.Credibility == model.CredibilityHigh {
			hasHigh = true
			break
		}
	}
	if !hasHigh {
		missing = append(missing, "No high-credibility source in evidence set")
	}

	if meanSnippetLength(evidence) < 50 {
		missing = append(missing, "Evidence snippets too brief to judge detail")
	}

	if distinctSourceKinds(evidence) < 2 {
		missing = append(missing, "All evidence comes from a single source kind")
	}

	if analysis.Complexity == model.ComplexityComplex && coverage < 1.0 {
		missing = append(missing, "Not all claim entities are covered by the evidence")
	}

	if analysis.Temporality == model.TemporalityCurrent || analysis.Temporality == model.TemporalityRecent {
		hasWeb := false
		for _, e := range evidence {
			switch e.SourceKind {
			case model.SourceKindWeb, model.SourceKindWebCurrent:
				hasWeb = true
			}
		}
		if !hasWeb {
			missing = append(missing, "No recent web source for a time-sensitive claim")
		}
	}

	return missing
}

func recommendation(sufficient bool, sourceCount int, quality float64) string {
	switch {
	case sufficient:
		return "SUFFICIENT: evidence base supports confident verification"
	case sourceCount < minSources:
		return "NEED_MORE_SOURCES: fewer than 2 independent sources retrieved"
	case quality < qualityThreshold:
		return "QUALITY_TOO_LOW: evidence quality below verification threshold"
	default:
		return "MARGINAL: evidence is borderline, temper verdict confidence"
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
