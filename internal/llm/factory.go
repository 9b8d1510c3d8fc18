package llm

import (
	"fmt"
	"strings"

	"veracity/internal/model"
)

// NewCompleter creates a completer based on configuration.
func NewCompleter(config model.LLMConfig) (Completer, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAICompleter(config)

	case "":
		// No provider configured. Verdict generation cannot run without
		// one; callers surface this at pipeline construction.
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
	}
}
