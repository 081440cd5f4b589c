package services

import (
	"context"
	"fmt"

	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driven"
	"github.com/briefwise-labs/briefwise-cli/internal/logger"
)

// LibraryService keeps the document catalog and the vector store in
// step. The catalog decides which ids exist; new records are indexed in
// the vector store and then committed to the catalog.
type LibraryService struct {
	catalog driven.DocumentCatalog
	vector  driven.VectorStore
}

// NewLibraryService creates a library over a catalog and vector store.
func NewLibraryService(catalog driven.DocumentCatalog, vector driven.VectorStore) *LibraryService {
	return &LibraryService{catalog: catalog, vector: vector}
}

// UpsertNew inserts records whose ids are not yet stored and returns the
// number inserted. Existing ids are left untouched.
func (s *LibraryService) UpsertNew(ctx context.Context, records []domain.EmailRecord) (int, error) {
	inserted := 0
	for _, rec := range records {
		doc := domain.DocumentFromEmail(rec)

		known, err := s.catalog.Has(ctx, doc.ID)
		if err != nil {
			return inserted, fmt.Errorf("checking document %s: %w", doc.ID, err)
		}
		if known {
			logger.Debug("Skipping known document %s", doc.ID)
			continue
		}

		// The vector store is written first. A failure there leaves the
		// catalog untouched, so the next sync retries the record instead
		// of treating it as stored but unretrievable. An orphaned vector
		// entry from a failed catalog save is overwritten on retry.
		if err := s.vector.Add(ctx, doc); err != nil {
			return inserted, fmt.Errorf("indexing document %s: %w", doc.ID, err)
		}
		if err := s.catalog.Save(ctx, doc); err != nil {
			return inserted, fmt.Errorf("saving document %s: %w", doc.ID, err)
		}
		inserted++
	}

	logger.Info("Inserted %d of %d documents, %d indexed", inserted, len(records), s.vector.Count())
	return inserted, nil
}

// All returns every stored document.
func (s *LibraryService) All(ctx context.Context) ([]domain.StoredDocument, error) {
	return s.catalog.All(ctx)
}

// Query returns the k nearest stored documents to the query text.
func (s *LibraryService) Query(ctx context.Context, text string, k int) ([]domain.StoredDocument, error) {
	return s.vector.Query(ctx, text, k)
}

// Close releases the underlying catalog.
func (s *LibraryService) Close() error {
	return s.catalog.Close()
}
