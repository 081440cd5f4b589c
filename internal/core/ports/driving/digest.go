package driving

import (
	"context"

	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driven"
)

// DigestService exposes the three user actions: summarising recent
// newsletters, answering a free-text question over the stored documents,
// and syncing the mailbox into the store.
type DigestService interface {
	// Summarize generates a summary of all documents received within the
	// trailing window of days. When no documents qualify, the returned
	// Answer carries a fixed message and no model call is made.
	Summarize(ctx context.Context, windowDays int, opts GenerateParams) (*Answer, error)

	// Answer responds to a free-text question using the top-k retrieved
	// documents as context.
	Answer(ctx context.Context, question string, topK int, opts GenerateParams) (*Answer, error)

	// Sync fetches newsletters from the mailbox for the trailing window
	// of days and upserts new ones into the document store.
	Sync(ctx context.Context, windowDays int) (*SyncReport, error)
}

// GenerateParams carries the sampling parameters adjustable in the UI.
type GenerateParams struct {
	// Temperature controls randomness.
	Temperature float64

	// MaxTokens is the maximum number of output tokens.
	MaxTokens int

	// CountTokens requests an input token count alongside the response.
	CountTokens bool
}

// Options converts the UI parameters into generation options.
func (p GenerateParams) Options() driven.GenerateOptions {
	return driven.GenerateOptions{
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	}
}

// Answer is the result of a Summarize or Answer call.
type Answer struct {
	// Text is the model's response, or a fixed message when no model
	// call was made.
	Text string

	// InputTokens is the input token count, present only when requested
	// and a model call was made.
	InputTokens *int
}

// SyncReport describes the outcome of a mailbox sync.
type SyncReport struct {
	// Fetched is the number of messages returned by the mailbox query.
	Fetched int

	// Inserted is the number of new documents added to the store.
	Inserted int
}
