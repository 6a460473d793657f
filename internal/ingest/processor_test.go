package ingest

import (
	"context"
	"testing"

	"github.com/portside/bollard/internal/extract"
	"github.com/portside/bollard/internal/store"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	s, err := store.NewStore(store.StoreConfig{DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return &Processor{Store: s, Engine: extract.NewEngine()}
}

const sofFixture = `STATEMENT OF FACTS
VESSEL: MV NORTHERN STAR
PORT: SANTOS
VESSEL ARRIVED SANTOS PORT LIMITS: 0545 HRS 03.04.2024
NOR TENDERED: 0630 HRS 03.04.2024
ALL FAST: 1315 HRS 03.04.2024
COMMENCED DISCHARGING: 1500 HRS 03.04.2024`

func TestProcessFile(t *testing.T) {
	p := newTestProcessor(t)
	ctx := context.Background()
	path := writeTempFile(t, "sof_santos.txt", sofFixture)

	res, err := p.ProcessFile(ctx, path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if res.Duplicate || res.Degraded {
		t.Errorf("unexpected flags: %+v", res)
	}
	if res.Document.ID <= 0 || res.Document.Filename != "sof_santos.txt" {
		t.Errorf("document = %+v", res.Document)
	}
	if len(res.Events) == 0 {
		t.Fatal("no events extracted")
	}
	if res.Document.EventCount != len(res.Events) {
		t.Errorf("event count %d != %d", res.Document.EventCount, len(res.Events))
	}
	if res.Summary.TotalEvents != len(res.Events) {
		t.Errorf("summary total %d != %d", res.Summary.TotalEvents, len(res.Events))
	}

	stored, err := p.Store.ListEvents(ctx, store.ListOpts{DocumentID: res.Document.ID})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(stored) != len(res.Events) {
		t.Errorf("stored %d events, extracted %d", len(stored), len(res.Events))
	}
	for _, e := range stored {
		if e.Vessel != "MV NORTHERN STAR" {
			t.Errorf("stored event lost vessel: %+v", e)
		}
	}
}

func TestProcessFileDuplicateIsNoOp(t *testing.T) {
	p := newTestProcessor(t)
	ctx := context.Background()

	first, err := p.ProcessFile(ctx, writeTempFile(t, "a.txt", sofFixture))
	if err != nil {
		t.Fatalf("first ProcessFile failed: %v", err)
	}

	// Same content under a different name dedups on the text hash.
	second, err := p.ProcessFile(ctx, writeTempFile(t, "b.txt", sofFixture))
	if err != nil {
		t.Fatalf("second ProcessFile failed: %v", err)
	}

	if !second.Duplicate {
		t.Error("duplicate upload not detected")
	}
	if second.Document.ID != first.Document.ID {
		t.Errorf("duplicate returned a new document: %d vs %d", second.Document.ID, first.Document.ID)
	}
	if len(second.Events) != len(first.Events) {
		t.Errorf("duplicate events differ: %d vs %d", len(second.Events), len(first.Events))
	}

	stats, err := p.Store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.DocumentCount != 1 {
		t.Errorf("duplicate created a document row: count = %d", stats.DocumentCount)
	}
}

func TestProcessFileSentinelText(t *testing.T) {
	p := newTestProcessor(t)
	ctx := context.Background()

	// A degraded extraction result flows through as low-signal text:
	// the document is recorded, with no events.
	path := writeTempFile(t, "scan.txt", SentinelOCRFailed+": no text layer found; the document appears to be image-based")

	res, err := p.ProcessFile(ctx, path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if !res.Degraded {
		t.Error("degraded flag not set")
	}
	if len(res.Events) != 0 {
		t.Errorf("sentinel text produced %d events", len(res.Events))
	}
	if res.Summary.Message != "No events extracted" {
		t.Errorf("summary = %+v", res.Summary)
	}
	if !res.Document.Degraded {
		t.Error("degraded flag not persisted")
	}
}

func TestProcessFileSizeLimit(t *testing.T) {
	p := newTestProcessor(t)
	p.MaxFileSize = 10

	_, err := p.ProcessFile(context.Background(), writeTempFile(t, "big.txt", sofFixture))
	if err == nil {
		t.Error("expected size limit error")
	}
}
