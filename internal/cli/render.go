package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"veracity/internal/model"
)

// writeResultJSON writes the full result to a file.
func writeResultJSON(result *model.VerifyResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// renderResult prints a human-readable summary to w.
func renderResult(w io.Writer, result *model.VerifyResult) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Claim:      %s\n", result.Claim)
	fmt.Fprintf(w, "Verdict:    %s (confidence %.2f)\n", result.Verdict.Verdict, result.Verdict.Confidence)
	fmt.Fprintf(w, "Strategy:   %s", result.Strategy)
	if result.StrategyForced {
		fmt.Fprintf(w, " (forced)")
	}
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Evidence:   %d source(s)\n", result.EvidenceCount)

	if result.Sufficiency != nil {
		fmt.Fprintf(w, "Sufficiency: %.2f — %s\n", result.Sufficiency.Score, result.Sufficiency.Recommendation)
	}

	fmt.Fprintf(w, "\nReasoning:\n%s\n", result.Verdict.Reasoning)

	if len(result.Verdict.Citations) > 0 {
		fmt.Fprintf(w, "\nCitations:\n")
		for _, c := range result.Verdict.Citations {
			fmt.Fprintf(w, "  [%d] %s\n      %s\n", c.Index, c.Title, c.URL)
		}
	}

	if len(result.Verdict.Contradictions) > 0 {
		fmt.Fprintf(w, "\nContradictions:\n")
		for _, c := range result.Verdict.Contradictions {
			fmt.Fprintf(w, "  - %s\n", c)
		}
	}

	if result.Critique != nil && len(result.Critique.Issues) > 0 {
		fmt.Fprintf(w, "\nCritique issues:\n")
		for _, issue := range result.Critique.Issues {
			fmt.Fprintf(w, "  - [%s/%s] %s\n", issue.Severity, issue.Type, issue.Description)
		}
		if result.Corrected {
			fmt.Fprintf(w, "  (verdict corrected)\n")
		}
	}

	fmt.Fprintf(w, "\n")
}
