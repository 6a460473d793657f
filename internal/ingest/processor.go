package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/portside/bollard/internal/extract"
	"github.com/portside/bollard/internal/store"
)

// DefaultMaxFileSize caps uploads at 16 MiB.
const DefaultMaxFileSize = 16 << 20

// Processor runs the full document pipeline: text extraction, content
// dedup, event extraction, and persistence.
type Processor struct {
	Store       store.Store
	Engine      *extract.Engine
	MaxFileSize int64
}

// Result describes one processed document.
type Result struct {
	Document  *store.Document
	Events    []extract.Event
	Summary   extract.Summary
	Duplicate bool
	Degraded  bool
}

// ProcessFile processes one document end to end. Re-uploading a file
// whose extracted text was already processed is a no-op that returns
// the stored document.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Result, error) {
	maxSize := p.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.Size() > maxSize {
		return nil, fmt.Errorf("file %s exceeds size limit (%d > %d bytes)", path, fi.Size(), maxSize)
	}

	text, err := ExtractText(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", path, err)
	}
	degraded := IsDegraded(text)

	hash := store.HashDocumentContent(text)
	existing, err := p.Store.FindByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("checking for duplicate: %w", err)
	}
	if existing != nil {
		stored, err := p.Store.ListEvents(ctx, store.ListOpts{DocumentID: existing.ID})
		if err != nil {
			return nil, fmt.Errorf("loading stored events: %w", err)
		}
		events := FromStoreEvents(stored)
		return &Result{
			Document:  existing,
			Events:    events,
			Summary:   extract.Summarize(events),
			Duplicate: true,
			Degraded:  existing.Degraded,
		}, nil
	}

	// Sentinel text flows through extraction like any other input; it
	// just carries no events.
	events := p.Engine.ExtractEvents(text)

	doc := &store.Document{
		Filename:    filepath.Base(path),
		ContentHash: hash,
		TextLength:  len(text),
		Degraded:    degraded,
		EventCount:  len(events),
	}
	if _, err := p.Store.AddDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("storing document: %w", err)
	}
	if len(events) > 0 {
		if err := p.Store.AddEvents(ctx, doc.ID, toStoreEvents(events)); err != nil {
			return nil, fmt.Errorf("storing events: %w", err)
		}
	}

	return &Result{
		Document: doc,
		Events:   events,
		Summary:  extract.Summarize(events),
		Degraded: degraded,
	}, nil
}

func toStoreEvents(events []extract.Event) []*store.Event {
	out := make([]*store.Event, len(events))
	for i, e := range events {
		out[i] = &store.Event{
			EventType:        e.EventType,
			EventName:        e.EventName,
			Confidence:       e.Confidence,
			StartTime:        e.StartTime,
			Location:         e.Location,
			Remarks:          e.Remarks,
			RawMatch:         e.RawMatch,
			Vessel:           e.Vessel,
			Port:             e.Port,
			ExtractionMethod: e.ExtractionMethod,
		}
	}
	return out
}

// FromStoreEvents rebuilds pipeline events from their persisted form,
// for summaries over already-processed documents.
func FromStoreEvents(events []*store.Event) []extract.Event {
	out := make([]extract.Event, len(events))
	for i, e := range events {
		out[i] = extract.Event{
			EventType:        e.EventType,
			EventName:        e.EventName,
			Confidence:       e.Confidence,
			StartTime:        e.StartTime,
			Location:         e.Location,
			Remarks:          e.Remarks,
			RawMatch:         e.RawMatch,
			Vessel:           e.Vessel,
			Port:             e.Port,
			ExtractionMethod: e.ExtractionMethod,
			ExtractedAt:      e.CreatedAt,
		}
	}
	return out
}
