package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AddDocument inserts a new document record. Returns the new ID.
func (s *SQLiteStore) AddDocument(ctx context.Context, d *Document) (int64, error) {
	if d.Filename == "" {
		return 0, fmt.Errorf("document filename cannot be empty")
	}
	if d.ContentHash == "" {
		return 0, fmt.Errorf("document content hash cannot be empty")
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (filename, content_hash, text_length, degraded, event_count, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.Filename, d.ContentHash, d.TextLength, d.Degraded, d.EventCount, now,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting document: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	d.ID = id
	d.ProcessedAt = now
	return id, nil
}

// GetDocument retrieves a document by ID. Returns nil if not found.
func (s *SQLiteStore) GetDocument(ctx context.Context, id int64) (*Document, error) {
	d := &Document{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, content_hash, text_length, degraded, event_count, processed_at
		 FROM documents WHERE id = ?`, id,
	).Scan(&d.ID, &d.Filename, &d.ContentHash, &d.TextLength, &d.Degraded, &d.EventCount, &d.ProcessedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting document %d: %w", id, err)
	}
	return d, nil
}

// FindByHash retrieves a document by content hash. Returns nil if not
// found; used for upload deduplication.
func (s *SQLiteStore) FindByHash(ctx context.Context, hash string) (*Document, error) {
	d := &Document{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, content_hash, text_length, degraded, event_count, processed_at
		 FROM documents WHERE content_hash = ?`, hash,
	).Scan(&d.ID, &d.Filename, &d.ContentHash, &d.TextLength, &d.Degraded, &d.EventCount, &d.ProcessedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding document by hash: %w", err)
	}
	return d, nil
}

// ListDocuments returns documents with pagination, newest first.
func (s *SQLiteStore) ListDocuments(ctx context.Context, opts ListOpts) ([]*Document, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, content_hash, text_length, degraded, event_count, processed_at
		 FROM documents ORDER BY processed_at DESC, id DESC LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		d := &Document{}
		if err := rows.Scan(&d.ID, &d.Filename, &d.ContentHash, &d.TextLength,
			&d.Degraded, &d.EventCount, &d.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document; its events go with it via the
// foreign-key cascade.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %d not found", id)
	}
	return nil
}
