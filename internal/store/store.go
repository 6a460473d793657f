// Package store provides the SQLite storage layer for Bollard.
//
// All extraction data lives in a single SQLite database file:
// - Processed documents with provenance and a content hash
// - Extracted events, cascade-deleted with their document
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the default database location.
const DefaultDBPath = "~/.bollard/bollard.db"

// Document represents one processed SoF document.
type Document struct {
	ID          int64
	Filename    string
	ContentHash string
	TextLength  int
	Degraded    bool
	EventCount  int
	ProcessedAt time.Time
}

// Event is the persisted form of one extracted event.
type Event struct {
	ID               int64
	DocumentID       int64
	EventType        string
	EventName        string
	Confidence       float64
	StartTime        string
	Location         string
	Remarks          string
	RawMatch         string
	Vessel           string
	Port             string
	ExtractionMethod string
	CreatedAt        time.Time
}

// ListOpts controls pagination and filtering for List operations.
type ListOpts struct {
	Limit         int
	Offset        int
	DocumentID    int64
	EventType     string
	MinConfidence float64
}

// StoreStats holds observability statistics about the store.
type StoreStats struct {
	DocumentCount int64
	EventCount    int64
	DBSizeBytes   int64
}

// StoreConfig holds configuration for NewStore.
type StoreConfig struct {
	DBPath string
}

// Store defines the core storage interface.
type Store interface {
	// Documents
	AddDocument(ctx context.Context, d *Document) (int64, error)
	GetDocument(ctx context.Context, id int64) (*Document, error)
	ListDocuments(ctx context.Context, opts ListOpts) ([]*Document, error)
	DeleteDocument(ctx context.Context, id int64) error

	// Deduplication
	FindByHash(ctx context.Context, hash string) (*Document, error)

	// Events
	AddEvents(ctx context.Context, documentID int64, events []*Event) error
	ListEvents(ctx context.Context, opts ListOpts) ([]*Event, error)

	// Observability
	Stats(ctx context.Context) (*StoreStats, error)

	// Maintenance
	Vacuum(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a new SQLite-backed Store.
// Pass ":memory:" for in-memory databases (testing).
func NewStore(cfg StoreConfig) (Store, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = expandPath(DefaultDBPath)
	}

	// Create parent directory for non-memory databases
	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Enable WAL mode and foreign keys
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, dbPath: cfg.DBPath}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Vacuum runs VACUUM on the database. Manual only, never automatic.
func (s *SQLiteStore) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

// Stats returns row counts and the database file size.
func (s *SQLiteStore) Stats(ctx context.Context) (*StoreStats, error) {
	stats := &StoreStats{}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&stats.DocumentCount); err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&stats.EventCount); err != nil {
		return nil, fmt.Errorf("counting events: %w", err)
	}

	if s.dbPath != ":memory:" {
		if fi, err := os.Stat(s.dbPath); err == nil {
			stats.DBSizeBytes = fi.Size()
		}
	}
	return stats, nil
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
