package csvfile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead(t *testing.T) {
	path := writeCSV(t, "Implementation,ImageRef,Keywords\nAcme ERP,7,\"erp, finance\"\nBeta CRM,12,crm\n")

	file, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	wantHeader := []string{"Implementation", "ImageRef", "Keywords"}
	if !reflect.DeepEqual(file.Header, wantHeader) {
		t.Errorf("Header = %v, want %v", file.Header, wantHeader)
	}
	if len(file.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(file.Rows))
	}
	if file.Rows[0]["Implementation"] != "Acme ERP" {
		t.Errorf("row 0 Implementation = %q", file.Rows[0]["Implementation"])
	}
	if file.Rows[0]["Keywords"] != "erp, finance" {
		t.Errorf("row 0 Keywords = %q", file.Rows[0]["Keywords"])
	}
	if file.Rows[1]["ImageRef"] != "12" {
		t.Errorf("row 1 ImageRef = %q", file.Rows[1]["ImageRef"])
	}
}

func TestReadShortRows(t *testing.T) {
	path := writeCSV(t, "Implementation,ImageRef,Description\nAcme ERP,7\n")

	file, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got := file.Rows[0]["Description"]; got != "" {
		t.Errorf("missing cell should read empty, got %q", got)
	}
}

func TestReadEmptyFile(t *testing.T) {
	if _, err := Read(writeCSV(t, "")); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestReadHeaderOnly(t *testing.T) {
	if _, err := Read(writeCSV(t, "Implementation,ImageRef\n")); err == nil {
		t.Error("expected error for file with no data rows")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
