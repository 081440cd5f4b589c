package driven

import (
	"context"

	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
)

// DocumentCatalog persists document content and metadata keyed by id.
// Backed by SQLite. The catalog is the source of truth for which ids
// exist; the vector store mirrors it for similarity search.
type DocumentCatalog interface {
	// Save stores a document. Returns domain.ErrAlreadyExists when the
	// id is already present; existing documents are never modified.
	Save(ctx context.Context, doc domain.StoredDocument) error

	// Has reports whether a document with the given id exists.
	Has(ctx context.Context, id string) (bool, error)

	// All returns every stored document with its metadata.
	All(ctx context.Context) ([]domain.StoredDocument, error)

	// Close releases resources.
	Close() error
}
