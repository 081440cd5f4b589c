package driven

import "context"

// LLMService wraps a hosted text-generation API.
//
// Implementations may include:
//   - Gemini (Generative Language API)
//   - OpenAI-compatible endpoints
type LLMService interface {
	// Generate produces text from a prompt under a system instruction.
	Generate(ctx context.Context, prompt, system string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// GenerateOptions configures sampling behaviour.
type GenerateOptions struct {
	// Temperature controls randomness (0.0 = deterministic, 2.0 = creative).
	Temperature float64

	// MaxTokens is the maximum number of output tokens to generate.
	MaxTokens int
}
