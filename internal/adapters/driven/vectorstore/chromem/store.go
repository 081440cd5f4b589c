// Package chromem provides the embedded vector store backed by chromem-go.
//
// Documents are persisted to disk alongside their embeddings, so the
// collection survives restarts without re-embedding. Embeddings come from
// the configured EmbeddingService at both insert and query time.
package chromem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/philippgille/chromem-go"

	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driven"
)

// collectionName is the single collection holding email documents.
const collectionName = "emails"

// Store is a persistent chromem-go collection of email documents.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
}

var _ driven.VectorStore = (*Store)(nil)

// NewStore opens or creates the vector database at the given data
// directory. If dataDir is empty, defaults to ~/.briefwise/data/vectors.
func NewStore(dataDir string, embedder driven.EmbeddingService) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".briefwise", "data")
	}

	db, err := chromem.NewPersistentDB(filepath.Join(dataDir, "vectors"), false)
	if err != nil {
		return nil, fmt.Errorf("opening vector database: %w", err)
	}

	embedFunc := embeddingFunc(embedder)
	collection, err := db.GetOrCreateCollection(collectionName, nil, embedFunc)
	if err != nil {
		return nil, fmt.Errorf("opening collection %q: %w", collectionName, err)
	}

	return &Store{db: db, collection: collection}, nil
}

// Add inserts a document with its metadata into the collection.
func (s *Store) Add(ctx context.Context, doc domain.StoredDocument) error {
	if doc.ID == "" {
		return domain.ErrInvalidInput
	}

	err := s.collection.AddDocuments(ctx, []chromem.Document{
		{
			ID:      doc.ID,
			Content: doc.Content,
			Metadata: map[string]string{
				"subject": doc.Metadata.Subject,
				"sender":  doc.Metadata.Sender,
				"date":    doc.Metadata.Date,
			},
		},
	}, 1)
	if err != nil {
		return fmt.Errorf("adding document %s: %w", doc.ID, err)
	}
	return nil
}

// Query returns the k nearest neighbours to the query text, most similar
// first. k larger than the collection is clamped; an empty collection
// yields no results.
func (s *Store) Query(ctx context.Context, text string, k int) ([]domain.StoredDocument, error) {
	count := s.collection.Count()
	if count == 0 || k <= 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.Query(ctx, text, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}

	docs := make([]domain.StoredDocument, 0, len(results))
	for _, res := range results {
		docs = append(docs, domain.StoredDocument{
			ID:      res.ID,
			Content: res.Content,
			Metadata: domain.DocumentMetadata{
				Subject: res.Metadata["subject"],
				Sender:  res.Metadata["sender"],
				Date:    res.Metadata["date"],
			},
		})
	}
	return docs, nil
}

// Count returns the number of documents in the collection.
func (s *Store) Count() int {
	return s.collection.Count()
}

// embeddingFunc bridges an EmbeddingService into chromem's callback type.
func embeddingFunc(embedder driven.EmbeddingService) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return embedder.Embed(ctx, text)
	}
}
