package transform

import (
	"reflect"
	"testing"

	"github.com/golives/glc/internal/types"
)

func TestTransformDates(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		want      string
		wantWarns int
	}{
		{"iso date", "2020-01-01", "Wed Jan 01 2020", 0},
		{"us date", "01/15/2020", "Wed Jan 15 2020", 0},
		{"written date", "Jan 2, 2020", "Thu Jan 02 2020", 0},
		{"garbage", "not-a-date", "", 1},
		{"partial", "2020-13-45", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := types.RawRow{
				"Implementation": "Acme ERP",
				"KickOffDate":    tt.value,
			}
			rec, warnings := Transform(row, 1, "op", "op@sap.com", "u")
			if rec.KickOffDate != tt.want {
				t.Errorf("KickOffDate = %q, want %q", rec.KickOffDate, tt.want)
			}
			if len(warnings) != tt.wantWarns {
				t.Errorf("warnings = %v, want %d", warnings, tt.wantWarns)
			}
		})
	}
}

func TestTransformDateInvariant(t *testing.T) {
	tests := []struct {
		name     string
		kickOff  string
		goLive   string
		wantBoth bool // true if both dates should survive
	}{
		{"kickoff before golive", "2020-01-01", "2020-06-01", true},
		{"kickoff equals golive", "2020-06-01", "2020-06-01", false},
		{"kickoff after golive", "2020-07-01", "2020-06-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := types.RawRow{
				"Implementation": "Acme ERP",
				"KickOffDate":    tt.kickOff,
				"GoLiveDate":     tt.goLive,
			}
			rec, warnings := Transform(row, 1, "op", "op@sap.com", "u")
			if tt.wantBoth {
				if rec.KickOffDate == "" || rec.GoLiveDate == "" {
					t.Errorf("dates should survive, got kickOff=%q goLive=%q", rec.KickOffDate, rec.GoLiveDate)
				}
				if len(warnings) != 0 {
					t.Errorf("unexpected warnings: %v", warnings)
				}
			} else {
				if rec.KickOffDate != "" || rec.GoLiveDate != "" {
					t.Errorf("dates should be cleared, got kickOff=%q goLive=%q", rec.KickOffDate, rec.GoLiveDate)
				}
				if len(warnings) != 1 {
					t.Errorf("expected 1 warning, got %v", warnings)
				}
			}
		})
	}
}

func TestTransformKeywords(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"two keywords", "erp, finance", []string{"erp", "finance"}},
		{"untrimmed", "  erp ,finance  ", []string{"erp", "finance"}},
		{"single", "erp", []string{"erp"}},
		{"duplicates preserved", "erp, erp", []string{"erp", "erp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := types.RawRow{
				"Implementation": "Acme ERP",
				"Keywords":       tt.value,
			}
			rec, _ := Transform(row, 1, "op", "op@sap.com", "u")
			if !reflect.DeepEqual(rec.Keywords, tt.want) {
				t.Errorf("Keywords = %v, want %v", rec.Keywords, tt.want)
			}
		})
	}
}

func TestTransformNeverFails(t *testing.T) {
	// A thoroughly broken row still yields a reviewable record.
	row := types.RawRow{
		"Implementation": "Broken",
		"KickOffDate":    "???",
		"GoLiveDate":     "also bad",
	}
	rec, warnings := Transform(row, 3, "op", "op@sap.com", "u")
	if rec == nil {
		t.Fatal("Transform returned nil record")
	}
	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", warnings)
	}
	if rec.ID != 3 {
		t.Errorf("ID = %d, want 3", rec.ID)
	}
}

func TestTransformEndToEnd(t *testing.T) {
	row := types.RawRow{
		"Implementation": "Acme ERP",
		"KickOffDate":    "2020-01-01",
		"GoLiveDate":     "2020-06-01",
		"Keywords":       "erp, finance",
		"ImageRef":       "7",
	}

	rec, warnings := Transform(row, 5, "John Doe", "john.doe@sap.com", "https://example.com/u")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := &types.Record{
		ID:             5,
		Implementation: "Acme ERP",
		KickOffDate:    "Wed Jan 01 2020",
		GoLiveDate:     "Mon Jun 01 2020",
		Keywords:       []string{"erp", "finance"},
		CreatedBy:      "John Doe",
		CreatedByEmail: "john.doe@sap.com",
		ImageURL:       "https://example.com/u",
	}
	if !reflect.DeepEqual(rec, want) {
		t.Errorf("Transform() = %+v, want %+v", rec, want)
	}
}
