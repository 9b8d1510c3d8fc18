package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"veracity/internal/pipeline"
)

var (
	outJSON      string
	claimContext string
	timeout      time.Duration
	showEvidence bool
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claim>",
	Short: "Verify a single claim and print the verdict",
	Long: `Verify classifies the claim, routes it to a verification strategy,
retrieves evidence from the knowledge base and web search, generates a
structured verdict with citations, and audits the verdict with a
self-critique pass.

Example:
  veracity verify "The Eiffel Tower was completed in 1889"
  veracity verify "..." --strategy agentic --json verdict.json
  veracity verify "..." --no-web-search --no-critique`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	registerPipelineFlags(verifyCmd)
	verifyCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	verifyCmd.Flags().StringVar(&claimContext, "context", "", "additional context for the claim")
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall verification timeout")
	verifyCmd.Flags().BoolVar(&showEvidence, "show-evidence", false, "include the evidence set in output")
}

func runVerify(cmd *cobra.Command, args []string) error {
	claim := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Output.IncludeEvidence = showEvidence

	p, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n\n", claim)
	}

	result, err := p.Verify(ctx, buildRequest(claim, claimContext))
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if outJSON != "" {
		if err := writeResultJSON(result, outJSON); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	renderResult(os.Stdout, result)
	return nil
}
