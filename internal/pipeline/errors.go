package pipeline

import "errors"

// Sentinel errors carry the machine-checkable category; callers match
// with errors.Is and surface the wrapped detail string to humans.
var (
	// ErrEmptyClaim rejects a request before any pipeline work.
	ErrEmptyClaim = errors.New("empty_claim")

	// ErrInvalidStrategy rejects an unrecognized forced strategy.
	ErrInvalidStrategy = errors.New("invalid_strategy")

	// ErrVerdictGeneration is the one genuinely fatal pipeline path: no
	// sensible default verdict exists when generation fails.
	ErrVerdictGeneration = errors.New("verdict_generation_failed")
)
