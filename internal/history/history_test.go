package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndRunRecordsRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	runID := "run-1"
	if err := store.Append(Record{
		RunID:          runID,
		Repo:           "svc",
		Kind:           "copy",
		SourceAbs:      "/repo/README.md",
		DestinationAbs: "/docs/guides/README.md",
	}, time.Unix(0, 0)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := store.RunRecords(runID)
	if err != nil {
		t.Fatalf("RunRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Kind != "copy" || records[0].Repo != "svc" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

func TestRunRecordsIsScopedToRunID(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	store.Append(Record{RunID: "run-a", Repo: "svc", Kind: "copy"}, time.Unix(0, 0))
	store.Append(Record{RunID: "run-b", Repo: "svc", Kind: "delete"}, time.Unix(0, 0))

	records, err := store.RunRecords("run-a")
	if err != nil {
		t.Fatalf("RunRecords: %v", err)
	}
	if len(records) != 1 || records[0].Kind != "copy" {
		t.Fatalf("expected only run-a's record, got %+v", records)
	}
}
