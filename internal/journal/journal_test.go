package journal

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	runID, err := j.BeginRun(ctx, "John Doe", "john.doe@sap.com", "golives.csv")
	if err != nil {
		t.Fatalf("BeginRun() error = %v", err)
	}
	if runID == "" {
		t.Fatal("BeginRun() returned empty run id")
	}

	if err := j.RecordImport(ctx, runID, 42, "Acme ERP"); err != nil {
		t.Fatalf("RecordImport() error = %v", err)
	}
	if err := j.SetAsset(ctx, runID, 42, "images/123_Acme ERP.png", "https://example.com/u"); err != nil {
		t.Fatalf("SetAsset() error = %v", err)
	}
	if err := j.SetState(ctx, runID, 42, StateWritten, ""); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}

	// Written but not committed: a rollback candidate.
	entries, err := j.Uncommitted(ctx)
	if err != nil {
		t.Fatalf("Uncommitted() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.RecordID != 42 || e.AssetKey != "images/123_Acme ERP.png" || e.State != StateWritten {
		t.Errorf("entry = %+v", e)
	}

	// Committing removes it from the rollback set.
	if err := j.SetState(ctx, runID, 42, StateCommitted, ""); err != nil {
		t.Fatal(err)
	}
	entries, err = j.Uncommitted(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d after commit, want 0", len(entries))
	}
}

func TestUncommittedIncludesUploadedState(t *testing.T) {
	// An upload whose record write never happened is exactly the orphan
	// the rollback command exists for.
	ctx := context.Background()
	j := openTestJournal(t)

	runID, err := j.BeginRun(ctx, "op", "op@sap.com", "f.csv")
	if err != nil {
		t.Fatal(err)
	}
	if err := j.RecordImport(ctx, runID, 7, "Beta CRM"); err != nil {
		t.Fatal(err)
	}
	if err := j.SetAsset(ctx, runID, 7, "images/1_Beta CRM.png", "u"); err != nil {
		t.Fatal(err)
	}

	entries, err := j.Uncommitted(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].State != StateUploaded {
		t.Errorf("entries = %+v, want one uploaded entry", entries)
	}
}

func TestPendingAndFailedAreNotRollbackCandidates(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	runID, err := j.BeginRun(ctx, "op", "op@sap.com", "f.csv")
	if err != nil {
		t.Fatal(err)
	}
	if err := j.RecordImport(ctx, runID, 1, "A"); err != nil {
		t.Fatal(err)
	}
	if err := j.RecordImport(ctx, runID, 2, "B"); err != nil {
		t.Fatal(err)
	}
	if err := j.SetState(ctx, runID, 2, StateFailed, "upload blew up"); err != nil {
		t.Fatal(err)
	}

	entries, err := j.Uncommitted(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v, want none", entries)
	}
}

func TestSetStateUnknownRecord(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	if err := j.SetState(ctx, "no-such-run", 1, StateCommitted, ""); err == nil {
		t.Error("expected error updating a record that was never journaled")
	}
}
