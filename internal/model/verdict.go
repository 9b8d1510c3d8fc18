package model

import "strings"

// VerdictLabel is the truth label assigned to a claim.
type VerdictLabel string

const (
	VerdictTrue              VerdictLabel = "TRUE"
	VerdictFalse             VerdictLabel = "FALSE"
	VerdictPartiallyTrue     VerdictLabel = "PARTIALLY_TRUE"
	VerdictNotEnoughEvidence VerdictLabel = "NOT_ENOUGH_EVIDENCE"
)

// ParseVerdictLabel normalizes a completion-emitted label. Unknown labels
// map to NOT_ENOUGH_EVIDENCE, the documented preference over guessing.
func ParseVerdictLabel(s string) VerdictLabel {
	switch v := VerdictLabel(strings.ToUpper(strings.TrimSpace(s))); v {
	case VerdictTrue, VerdictFalse, VerdictPartiallyTrue, VerdictNotEnoughEvidence:
		return v
	default:
		return VerdictNotEnoughEvidence
	}
}

// Citation points at one evidence record by 1-based position in the
// ranked evidence array. Snippet and credibility are back-filled from the
// referenced record after generation; they stay empty when the completion
// emitted an out-of-range index, which the critique stage detects.
type Citation struct {
	Index       int             `json:"index"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Relevance   string          `json:"relevance"`
	Snippet     string          `json:"snippet,omitempty"`
	Credibility CredibilityTier `json:"credibility,omitempty"`
}

// Verdict is the structured outcome of verification. It is created by the
// verdict generator and may be mutated exactly once by the correction
// step; it is immutable and terminal thereafter.
type Verdict struct {
	Verdict        VerdictLabel `json:"verdict"`
	Confidence     float64      `json:"confidence"` // 0-1
	Reasoning      string       `json:"reasoning"`  // contains inline [n] markers
	Citations      []Citation   `json:"citations"`
	Contradictions []string     `json:"contradictions,omitempty"`
}

// CritiqueIssueType classifies what the auditor found wrong.
type CritiqueIssueType string

const (
	IssueInvalidCitation         CritiqueIssueType = "invalid_citation"
	IssueReasoningFlaw           CritiqueIssueType = "reasoning_flaw"
	IssueVerdictUnsupported      CritiqueIssueType = "verdict_unsupported"
	IssueConfidenceMiscalibrated CritiqueIssueType = "confidence_miscalibrated"
	IssueHallucination           CritiqueIssueType = "hallucination"
	IssueEvidenceMisrepresented  CritiqueIssueType = "evidence_misrepresented"
	IssueContradictionIgnored    CritiqueIssueType = "contradiction_ignored"
)

// IssueSeverity grades an issue; only critical issues drive correction.
type IssueSeverity string

const (
	SeverityCritical IssueSeverity = "critical"
	SeverityMajor    IssueSeverity = "major"
	SeverityMinor    IssueSeverity = "minor"
)

// CritiqueIssue is one problem the auditor flagged in a verdict.
type CritiqueIssue struct {
	Type        CritiqueIssueType `json:"type"`
	Severity    IssueSeverity     `json:"severity"`
	Description string            `json:"description"`
}

// CritiqueResult is the auditor's judgment of a verdict. Confidence here
// is confidence in the critique itself, not in the verdict.
type CritiqueResult struct {
	IsValid           bool            `json:"is_valid"`
	Confidence        float64         `json:"confidence"`
	Issues            []CritiqueIssue `json:"issues"`
	Suggestions       []string        `json:"suggestions,omitempty"`
	OverallAssessment string          `json:"overall_assessment,omitempty"`
}
