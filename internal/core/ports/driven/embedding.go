package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The vector store uses it both at insert time and at query time; the
// two must share one embedding model for similarity to be meaningful.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
