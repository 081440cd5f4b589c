package driven

import (
	"context"

	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
)

// VectorStore provides nearest-neighbour retrieval over stored documents.
// Backed by an embedded chromem-go collection.
type VectorStore interface {
	// Add inserts a document into the collection.
	Add(ctx context.Context, doc domain.StoredDocument) error

	// Query returns the k nearest neighbours to the free-text query,
	// most similar first. k is clamped to the collection size.
	Query(ctx context.Context, text string, k int) ([]domain.StoredDocument, error)

	// Count returns the number of documents in the collection.
	Count() int
}
