package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"veracity/internal/pipeline"
	"veracity/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch verifies multiple claims concurrently:
- Read claims from input file (one per line, # for comments)
- Verify claims in parallel with configurable worker count
- Write one JSON result per claim

Example:
  veracity batch claims.txt
  veracity batch claims.txt --concurrency 8 --output-dir ./verdicts
  veracity batch claims.txt --strategy hybrid --no-critique`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	registerPipelineFlags(batchCmd)
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./veracity-verdicts", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}

	processor := worker.NewBatchProcessor(p, concurrency, buildRequest("", ""))

	fmt.Fprintf(os.Stderr, "Reading claims from %s\n", file)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Verified %d claim(s) with %d worker(s)\n\n", len(results), concurrency)

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Claim, result.Error)
			continue
		}
		successCount++

		jsonPath := filepath.Join(outputDir, claimSlug(result.Claim)+".json")
		if err := writeResultJSON(result.Result, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Claim, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s → %s (%.2f)\n", result.Claim, result.Result.Verdict.Verdict, result.Result.Verdict.Confidence)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d total, %d verified, %d failed, output in %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}

// claimSlug derives a filesystem-safe name from a claim.
func claimSlug(claim string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, claim)

	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = slug[:80]
	}
	if slug == "" {
		slug = "claim"
	}
	return slug
}
