package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"veracity/internal/model"
)

// Verifier defines the interface for verifying a single claim
type Verifier interface {
	Verify(ctx context.Context, req model.VerifyRequest) (*model.VerifyResult, error)
}

// VerifyJob represents a single-claim verification job
type VerifyJob struct {
	Claim    string
	Request  model.VerifyRequest
	Verifier Verifier
}

// Execute executes the verification job
func (j *VerifyJob) Execute(ctx context.Context) Result {
	req := j.Request
	req.Claim = j.Claim
	result, err := j.Verifier.Verify(ctx, req)
	return &VerifyJobResult{
		Claim:  j.Claim,
		Result: result,
		Error:  err,
	}
}

// VerifyJobResult represents the result of a verification job
type VerifyJobResult struct {
	Claim  string
	Result *model.VerifyResult
	Error  error
}

// GetError returns the error from the verification result
func (r *VerifyJobResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple claims concurrently
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
	baseRequest model.VerifyRequest
}

// NewBatchProcessor creates a new batch processor. The base request's
// toggles (web search, critique, forced strategy) apply to every claim.
func NewBatchProcessor(verifier Verifier, concurrency int, baseRequest model.VerifyRequest) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
		baseRequest: baseRequest,
	}
}

// ProcessClaims verifies multiple claims concurrently
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*VerifyJobResult {
	if len(claims) == 0 {
		return []*VerifyJobResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, claim := range claims {
		pool.Submit(&VerifyJob{
			Claim:    claim,
			Request:  b.baseRequest,
			Verifier: b.verifier,
		})
	}

	results := pool.Wait()

	out := make([]*VerifyJobResult, len(results))
	for i, result := range results {
		out[i] = result.(*VerifyJobResult)
	}
	return out
}

// ProcessFile reads claims from a file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyJobResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}
	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads claims from a file (one per line), skipping
// blank lines, comments, and duplicates
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
