package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driven"
)

// Store is the SQLite-backed document catalog.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.DocumentCatalog = (*Store)(nil)

// NewStore creates a new SQLite catalog at the specified data directory.
// If dataDir is empty, defaults to ~/.briefwise/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".briefwise", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save stores a document. Existing documents are never modified; saving
// an id that is already present returns domain.ErrAlreadyExists.
func (s *Store) Save(ctx context.Context, doc domain.StoredDocument) error {
	if doc.ID == "" {
		return domain.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, subject, sender, date, content)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, doc.ID, doc.Metadata.Subject, doc.Metadata.Sender, doc.Metadata.Date, doc.Content)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking insert result: %w", err)
	}
	if affected == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

// Has reports whether a document with the given id exists.
func (s *Store) Has(ctx context.Context, id string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking document: %w", err)
	}
	return count > 0, nil
}

// All returns every stored document ordered by insertion time.
func (s *Store) All(ctx context.Context) ([]domain.StoredDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subject, sender, date, content
		FROM documents
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.StoredDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.StoredDocument
		if err := rows.Scan(&doc.ID, &doc.Metadata.Subject, &doc.Metadata.Sender,
			&doc.Metadata.Date, &doc.Content); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
