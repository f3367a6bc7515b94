package types

import (
	"testing"
)

func TestDefaultSchema(t *testing.T) {
	s := DefaultSchema()

	for _, f := range []string{"Implementation", FieldImageRef} {
		if !s.IsRequired(f) {
			t.Errorf("%s should be required", f)
		}
	}
	for _, f := range []string{"Keywords", "KickOffDate", "GoLiveDate", "Description"} {
		if s.IsRequired(f) {
			t.Errorf("%s should not be required", f)
		}
		if !s.IsAllowed(f) {
			t.Errorf("%s should be allowed", f)
		}
	}
	if s.IsAllowed("CreatedBy") {
		t.Error("stamped fields are not CSV columns")
	}
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		wantErr bool
	}{
		{
			name:    "valid",
			rec:     Record{ID: 1, Implementation: "Acme", ImageURL: "u"},
			wantErr: false,
		},
		{
			name:    "zero id",
			rec:     Record{Implementation: "Acme", ImageURL: "u"},
			wantErr: true,
		},
		{
			name:    "no implementation",
			rec:     Record{ID: 1, ImageURL: "u"},
			wantErr: true,
		},
		{
			name:    "no image url",
			rec:     Record{ID: 1, Implementation: "Acme"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.rec.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateMapRoundTrip(t *testing.T) {
	rec := &Record{
		ID:             5,
		Implementation: "Acme ERP",
		Keywords:       []string{"erp", "finance"},
		ImageURL:       "u",
	}
	m := rec.UpdateMap()
	if m["Id"] != 5 {
		t.Errorf("Id = %v", m["Id"])
	}
	if m["ImageUrl"] != "u" {
		t.Errorf("ImageUrl = %v, json key must stay ImageUrl", m["ImageUrl"])
	}
	if kw, ok := m["Keywords"].([]string); !ok || len(kw) != 2 {
		t.Errorf("Keywords = %v", m["Keywords"])
	}
}
