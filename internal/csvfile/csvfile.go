// Package csvfile reads a CSV import file into a header and string-keyed rows.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golives/glc/internal/types"
)

// File is a parsed CSV import file.
type File struct {
	Header []string
	Rows   []types.RawRow
}

// Read parses the CSV file at path. The first line is the header; every
// following line becomes a RawRow keyed by header name. Short records are
// tolerated (missing cells read as empty), matching how catalog exports
// trim trailing empty columns.
func Read(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return parse(f)
}

func parse(r io.Reader) (*File, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("import file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	file := &File{Header: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(file.Rows)+2, err)
		}
		row := make(types.RawRow, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		file.Rows = append(file.Rows, row)
	}
	if len(file.Rows) == 0 {
		return nil, fmt.Errorf("import file has no data rows")
	}
	return file, nil
}
