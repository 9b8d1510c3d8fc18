package model

// KnowledgeBaseURL is the sentinel URL for evidence that originates from
// the internal knowledge base and carries no public source URL.
const KnowledgeBaseURL = "internal://knowledge-base"

// EvidenceRecord is one retrieved source bearing on a claim.
// Records are created by a retrieval call, aggregated and deduplicated by
// the orchestrator, and consumed read-only downstream.
type EvidenceRecord struct {
	Title          string          `json:"title"`
	URL            string          `json:"url"`
	Snippet        string          `json:"snippet,omitempty"`
	Credibility    CredibilityTier `json:"credibility"`
	SourceKind     SourceKind      `json:"source_kind"`
	RelevanceScore *float64        `json:"relevance_score,omitempty"` // 0-1 when known
	RelatedVerdict string          `json:"related_verdict,omitempty"` // knowledge-base records only
}

// SourceKind tags the origin of an evidence record.
type SourceKind string

const (
	SourceKindVector        SourceKind = "vector"
	SourceKindWeb           SourceKind = "web"
	SourceKindWebCurrent    SourceKind = "web_current"
	SourceKindWebHistorical SourceKind = "web_historical"
	SourceKindAgent         SourceKind = "agent"
	SourceKindMock          SourceKind = "mock"
)

// CredibilityTier is a coarse trust tier assigned to a source.
type CredibilityTier int

const (
	CredibilityUnknown CredibilityTier = 0
	CredibilityVeryLow CredibilityTier = 1
	CredibilityLow     CredibilityTier = 2
	CredibilityMedium  CredibilityTier = 3
	CredibilityHigh    CredibilityTier = 4
)

func (t CredibilityTier) String() string {
	switch t {
	case CredibilityVeryLow:
		return "very_low"
	case CredibilityLow:
		return "low"
	case CredibilityMedium:
		return "medium"
	case CredibilityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Weight maps a credibility tier to its sufficiency-scoring weight.
func (t CredibilityTier) Weight() float64 {
	switch t {
	case CredibilityHigh:
		return 1.0
	case CredibilityMedium:
		return 0.7
	case CredibilityLow:
		return 0.4
	case CredibilityVeryLow:
		return 0.2
	default:
		return 0.5
	}
}

// ParseCredibility normalizes a credibility string; unknown inputs map to
// medium, the documented default for sources without a trust signal.
func ParseCredibility(s string) CredibilityTier {
	switch s {
	case "high":
		return CredibilityHigh
	case "medium":
		return CredibilityMedium
	case "low":
		return CredibilityLow
	case "very_low":
		return CredibilityVeryLow
	default:
		return CredibilityMedium
	}
}

// MarshalJSON renders the tier as its string name.
func (t CredibilityTier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON accepts the string names produced by MarshalJSON.
func (t *CredibilityTier) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "unknown" {
		*t = CredibilityUnknown
		return nil
	}
	*t = ParseCredibility(s)
	return nil
}

// DedupKey returns the identity key used by the orchestrator: URL plus the
// first 100 characters of the snippet. Two distinct long snippets sharing a
// 100-char prefix merge; that collision is accepted for parity with the
// original ranking behavior.
func (e EvidenceRecord) DedupKey() string {
	snippet := e.Snippet
	if len(snippet) > 100 {
		snippet = snippet[:100]
	}
	return e.URL + "::" + snippet
}
