package llm

// Package llm wraps the structured-completion capability: given an
// instruction and a JSON target schema, the provider returns raw JSON
// conforming to that schema or fails. The pipeline invokes it for claim
// classification, verdict generation, and critique, each with its own
// temperature.

import "context"

// CompletionRequest is one structured-completion invocation.
type CompletionRequest struct {
	// System frames the model's role for this call.
	System string

	// Prompt is the full instruction, including the schema the response
	// must conform to.
	Prompt string

	// Temperature controls randomness. The critique call runs coldest.
	Temperature float32

	// MaxTokens limits the response length. Zero means provider default.
	MaxTokens int
}

// Completer is the structured-completion capability. Implementations
// return the raw JSON payload; callers unmarshal into their own schema.
type Completer interface {
	// Name returns the provider name.
	Name() string

	// Complete performs one structured-completion call.
	Complete(ctx context.Context, req CompletionRequest) ([]byte, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}
