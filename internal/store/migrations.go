package store

import "fmt"

// migrate creates all tables if they don't exist.
func (s *SQLiteStore) migrate() error {
	statements := []string{
		// Processed documents
		`CREATE TABLE IF NOT EXISTS documents (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			filename     TEXT NOT NULL,
			content_hash TEXT UNIQUE NOT NULL,
			text_length  INTEGER NOT NULL DEFAULT 0,
			degraded     INTEGER NOT NULL DEFAULT 0,
			event_count  INTEGER NOT NULL DEFAULT 0,
			processed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Extracted events, removed with their document
		`CREATE TABLE IF NOT EXISTS events (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id       INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			event_type        TEXT NOT NULL,
			event             TEXT NOT NULL,
			confidence        REAL NOT NULL,
			start_time        TEXT,
			location          TEXT,
			remarks           TEXT,
			raw_match         TEXT,
			vessel            TEXT,
			port              TEXT,
			extraction_method TEXT NOT NULL,
			created_at        DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_document ON events(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents(content_hash)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}
	return nil
}
