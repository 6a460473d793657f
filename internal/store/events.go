package store

import (
	"context"
	"fmt"
	"time"
)

// AddEvents inserts a batch of events for one document inside a single
// transaction and updates the document's event count. All-or-nothing.
func (s *SQLiteStore) AddEvents(ctx context.Context, documentID int64, events []*Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (document_id, event_type, event, confidence, start_time,
		                     location, remarks, raw_match, vessel, port, extraction_method, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing event insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, e := range events {
		result, err := stmt.ExecContext(ctx,
			documentID, e.EventType, e.EventName, e.Confidence, e.StartTime,
			e.Location, e.Remarks, e.RawMatch, e.Vessel, e.Port, e.ExtractionMethod, now,
		)
		if err != nil {
			return fmt.Errorf("inserting event %q: %w", e.EventName, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting event insert id: %w", err)
		}
		e.ID = id
		e.DocumentID = documentID
		e.CreatedAt = now
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE documents SET event_count = ? WHERE id = ?", len(events), documentID); err != nil {
		return fmt.Errorf("updating event count: %w", err)
	}

	return tx.Commit()
}

// ListEvents returns events filtered by document, type, and minimum
// confidence, in insertion order.
func (s *SQLiteStore) ListEvents(ctx context.Context, opts ListOpts) ([]*Event, error) {
	if opts.Limit <= 0 {
		opts.Limit = 500
	}

	query := `SELECT id, document_id, event_type, event, confidence, start_time,
	                 location, remarks, raw_match, vessel, port, extraction_method, created_at
	          FROM events WHERE 1=1`
	args := []interface{}{}

	if opts.DocumentID > 0 {
		query += " AND document_id = ?"
		args = append(args, opts.DocumentID)
	}
	if opts.EventType != "" {
		query += " AND event_type = ?"
		args = append(args, opts.EventType)
	}
	if opts.MinConfidence > 0 {
		query += " AND confidence >= ?"
		args = append(args, opts.MinConfidence)
	}

	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.DocumentID, &e.EventType, &e.EventName, &e.Confidence,
			&e.StartTime, &e.Location, &e.Remarks, &e.RawMatch, &e.Vessel, &e.Port,
			&e.ExtractionMethod, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
