package store

import (
	"context"
	"fmt"
	"testing"
)

// newTestStore creates an in-memory store for testing.
func newTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewStore(StoreConfig{DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func addTestDocument(t *testing.T, s Store, filename, content string) *Document {
	t.Helper()
	d := &Document{
		Filename:    filename,
		ContentHash: HashDocumentContent(content),
		TextLength:  len(content),
	}
	if _, err := s.AddDocument(context.Background(), d); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}
	return d
}

// --- Database Initialization ---

func TestNewStore(t *testing.T) {
	s, err := NewStore(StoreConfig{DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer s.Close()

	ss := s.(*SQLiteStore)
	for _, table := range []string{"documents", "events"} {
		var name string
		err := ss.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestWALMode(t *testing.T) {
	s := newTestStore(t)
	ss := s.(*SQLiteStore)

	var mode string
	ss.db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	// In-memory databases use "memory" journal mode; WAL applies to
	// file-based databases.
	if mode != "memory" && mode != "wal" {
		t.Errorf("expected journal_mode 'wal' or 'memory', got %q", mode)
	}
}

// --- Document CRUD ---

func TestAddGetDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := addTestDocument(t, s, "sof_santos.pdf", "VESSEL ARRIVED: 0630 HRS 12.01.2024")
	if d.ID <= 0 {
		t.Fatalf("expected positive ID, got %d", d.ID)
	}
	if d.ProcessedAt.IsZero() {
		t.Error("ProcessedAt not set")
	}

	got, err := s.GetDocument(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if got == nil {
		t.Fatal("document not found")
	}
	if got.Filename != "sof_santos.pdf" || got.ContentHash != d.ContentHash {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetDocument(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing document, got %+v", got)
	}
}

func TestAddDocumentValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddDocument(ctx, &Document{ContentHash: "x"}); err == nil {
		t.Error("expected error for empty filename")
	}
	if _, err := s.AddDocument(ctx, &Document{Filename: "a.pdf"}); err == nil {
		t.Error("expected error for empty hash")
	}
}

func TestFindByHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := addTestDocument(t, s, "sof.pdf", "NOR TENDERED: 0630 HRS 12.01.2024")

	got, err := s.FindByHash(ctx, d.ContentHash)
	if err != nil {
		t.Fatalf("FindByHash failed: %v", err)
	}
	if got == nil || got.ID != d.ID {
		t.Errorf("FindByHash = %+v, want id %d", got, d.ID)
	}

	miss, err := s.FindByHash(ctx, "no-such-hash")
	if err != nil {
		t.Fatalf("FindByHash failed: %v", err)
	}
	if miss != nil {
		t.Errorf("expected nil for unknown hash, got %+v", miss)
	}
}

func TestDuplicateHashRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addTestDocument(t, s, "a.pdf", "same content")
	_, err := s.AddDocument(ctx, &Document{
		Filename:    "b.pdf",
		ContentHash: HashDocumentContent("same content"),
	})
	if err == nil {
		t.Error("expected unique constraint violation for duplicate hash")
	}
}

func TestListDocumentsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		addTestDocument(t, s, fmt.Sprintf("doc%d.pdf", i), fmt.Sprintf("content %d", i))
	}

	docs, err := s.ListDocuments(ctx, ListOpts{})
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("len = %d, want 3", len(docs))
	}
	if docs[0].Filename != "doc2.pdf" {
		t.Errorf("newest first expected, got %q first", docs[0].Filename)
	}

	page, err := s.ListDocuments(ctx, ListOpts{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(page) != 1 || page[0].Filename != "doc1.pdf" {
		t.Errorf("pagination broken: %+v", page)
	}
}

// --- Events ---

func testEvents() []*Event {
	return []*Event{
		{
			EventType:        "arrival",
			EventName:        "Vessel Arrived at Port",
			Confidence:       1.0,
			StartTime:        "06:30 12/01/2024",
			Location:         "SANTOS",
			Vessel:           "MV NORTHERN STAR",
			Port:             "SANTOS",
			ExtractionMethod: "pattern_matching",
		},
		{
			EventType:        "cargo",
			EventName:        "Loading Commenced",
			Confidence:       0.95,
			StartTime:        "09:00 12/01/2024",
			ExtractionMethod: "pattern_matching",
		},
		{
			EventType:        "weather",
			EventName:        "NLP Detected Weather",
			Confidence:       0.70,
			Remarks:          "operations suspended due to rain",
			ExtractionMethod: "nlp_context",
		},
	}
}

func TestAddListEvents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := addTestDocument(t, s, "sof.pdf", "doc body")
	if err := s.AddEvents(ctx, d.ID, testEvents()); err != nil {
		t.Fatalf("AddEvents failed: %v", err)
	}

	events, err := s.ListEvents(ctx, ListOpts{DocumentID: d.ID})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len = %d, want 3", len(events))
	}
	if events[0].EventName != "Vessel Arrived at Port" {
		t.Errorf("insertion order not preserved: %q first", events[0].EventName)
	}
	if events[0].StartTime != "06:30 12/01/2024" || events[0].Location != "SANTOS" {
		t.Errorf("event fields lost: %+v", events[0])
	}

	// The batch updates the document's event count.
	doc, err := s.GetDocument(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if doc.EventCount != 3 {
		t.Errorf("event count = %d, want 3", doc.EventCount)
	}
}

func TestListEventsFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := addTestDocument(t, s, "sof.pdf", "doc body")
	if err := s.AddEvents(ctx, d.ID, testEvents()); err != nil {
		t.Fatalf("AddEvents failed: %v", err)
	}

	byType, err := s.ListEvents(ctx, ListOpts{EventType: "cargo"})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(byType) != 1 || byType[0].EventName != "Loading Commenced" {
		t.Errorf("type filter: %+v", byType)
	}

	confident, err := s.ListEvents(ctx, ListOpts{MinConfidence: 0.90})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(confident) != 2 {
		t.Errorf("confidence filter: got %d events, want 2", len(confident))
	}
}

func TestDeleteDocumentCascadesEvents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := addTestDocument(t, s, "sof.pdf", "doc body")
	if err := s.AddEvents(ctx, d.ID, testEvents()); err != nil {
		t.Fatalf("AddEvents failed: %v", err)
	}

	if err := s.DeleteDocument(ctx, d.ID); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}

	events, err := s.ListEvents(ctx, ListOpts{DocumentID: d.ID})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected cascade delete, %d events remain", len(events))
	}

	if err := s.DeleteDocument(ctx, d.ID); err == nil {
		t.Error("expected error deleting missing document")
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := addTestDocument(t, s, "sof.pdf", "doc body")
	if err := s.AddEvents(ctx, d.ID, testEvents()); err != nil {
		t.Fatalf("AddEvents failed: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.DocumentCount != 1 || stats.EventCount != 3 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestHashDocumentContent(t *testing.T) {
	a := HashDocumentContent("content")
	b := HashDocumentContent("content")
	c := HashDocumentContent("other")
	if a != b {
		t.Error("hash not deterministic")
	}
	if a == c {
		t.Error("distinct content collided")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
