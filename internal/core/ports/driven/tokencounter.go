package driven

// TokenCounter counts input tokens for display in the UI.
// This is an optional service - when nil, token counts are omitted.
type TokenCounter interface {
	// Count returns the number of tokens in the text.
	Count(text string) (int, error)
}
