package importer

import (
	"context"
	"testing"
)

func TestBatchImportsRemainingRows(t *testing.T) {
	h := newHarness(t, "1", "2", "3")
	file := importFile(
		sampleRow("Alpha", "1"),
		sampleRow("Beta", "2"),
		sampleRow("Gamma", "3"),
	)

	res, err := h.eng.Run(context.Background(), file, h.opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Imported != 3 || res.Skipped != 0 {
		t.Errorf("Imported/Skipped = %d/%d, want 3/0", res.Imported, res.Skipped)
	}

	records, _ := h.store.Records(context.Background())
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	// Ids are allocated serially, re-read per row.
	for i, rec := range records {
		if rec.ID != i+1 {
			t.Errorf("record %d id = %d, want %d", i, rec.ID, i+1)
		}
	}
}

func TestBatchSkipsFailedRowAndContinues(t *testing.T) {
	// Row "Beta" has no screenshot: it must be skipped and logged, not
	// abort the batch.
	h := newHarness(t, "1", "3")
	file := importFile(
		sampleRow("Alpha", "1"),
		sampleRow("Beta", "2"),
		sampleRow("Gamma", "3"),
	)

	var warned bool
	h.eng.Warnf = func(format string, args ...interface{}) { warned = true }

	res, err := h.eng.Run(context.Background(), file, h.opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.State != StateSuccess {
		t.Fatalf("State = %s, want %s", res.State, StateSuccess)
	}
	if res.Imported != 2 || res.Skipped != 1 {
		t.Errorf("Imported/Skipped = %d/%d, want 2/1", res.Imported, res.Skipped)
	}
	if !warned {
		t.Error("skipped row must be logged")
	}

	// The skipped row does not burn an id.
	records, _ := h.store.Records(context.Background())
	if len(records) != 2 || records[1].ID != 2 {
		t.Errorf("records = %v", records)
	}
	if records[1].Implementation != "Gamma" {
		t.Errorf("second committed record = %q, want Gamma", records[1].Implementation)
	}
}

func TestBatchRowsGetOwnScreenshots(t *testing.T) {
	h := newHarness(t, "1", "2")
	file := importFile(sampleRow("Alpha", "1"), sampleRow("Beta", "2"))

	if _, err := h.eng.Run(context.Background(), file, h.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	records, _ := h.store.Records(context.Background())
	if records[0].ImageURL == records[1].ImageURL {
		t.Errorf("both records share image url %q", records[0].ImageURL)
	}
	for _, rec := range records {
		if rec.ImageURL == "" {
			t.Errorf("record %d has no image url", rec.ID)
		}
	}
}

func TestBatchStampsOperatorIdentity(t *testing.T) {
	h := newHarness(t, "1", "2")
	file := importFile(sampleRow("Alpha", "1"), sampleRow("Beta", "2"))

	if _, err := h.eng.Run(context.Background(), file, h.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	records, _ := h.store.Records(context.Background())
	for _, rec := range records {
		if rec.CreatedBy != "John Doe" || rec.CreatedByEmail != "john.doe@sap.com" {
			t.Errorf("record %d creator = %q <%q>", rec.ID, rec.CreatedBy, rec.CreatedByEmail)
		}
	}
}
