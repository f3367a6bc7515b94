// Package types defines the canonical catalog record and the field schema
// shared by the validator, transformer, and storage backends.
package types

import (
	"fmt"
	"sort"
)

// RawRow is one CSV data line keyed by header name. Rows are transient:
// they exist only until the transformer produces a Record from them.
type RawRow map[string]string

// FieldImageRef is the header column that links a row to its screenshot.
// It is matched against the screenshot folder and never copied into the
// record itself.
const FieldImageRef = "ImageRef"

// Record is the canonical shape of one catalog entry, stored at
// /properties/{Id}. JSON keys match the remote catalog layout.
type Record struct {
	ID             int      `json:"Id"`
	Implementation string   `json:"Implementation"`
	Description    string   `json:"Description"`
	Industry       string   `json:"Industry"`
	Region         string   `json:"Region"`
	Country        string   `json:"Country"`
	Products       string   `json:"Products"`
	KickOffDate    string   `json:"KickOffDate"`
	GoLiveDate     string   `json:"GoLiveDate"`
	Keywords       []string `json:"Keywords"`
	CreatedBy      string   `json:"CreatedBy"`
	CreatedByEmail string   `json:"CreatedByEmail"`
	ImageURL       string   `json:"ImageUrl"`
}

// NewRecord returns the template record: every field at its default (empty)
// value, onto which row values are merged.
func NewRecord() *Record {
	return &Record{Keywords: []string{}}
}

// Validate checks the invariants a record must hold before it is written.
func (r *Record) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("record id must be positive (got %d)", r.ID)
	}
	if r.Implementation == "" {
		return fmt.Errorf("implementation name is required")
	}
	if r.ImageURL == "" {
		return fmt.Errorf("image url is required")
	}
	return nil
}

// UpdateMap converts the record into the key/value form the catalog's
// merge-style update expects.
func (r *Record) UpdateMap() map[string]interface{} {
	return map[string]interface{}{
		"Id":             r.ID,
		"Implementation": r.Implementation,
		"Description":    r.Description,
		"Industry":       r.Industry,
		"Region":         r.Region,
		"Country":        r.Country,
		"Products":       r.Products,
		"KickOffDate":    r.KickOffDate,
		"GoLiveDate":     r.GoLiveDate,
		"Keywords":       r.Keywords,
		"CreatedBy":      r.CreatedBy,
		"CreatedByEmail": r.CreatedByEmail,
		"ImageUrl":       r.ImageURL,
	}
}

// Schema holds the required and allowed header field sets. Loaded once at
// startup and immutable afterwards.
type Schema struct {
	required map[string]bool
	allowed  map[string]bool
}

// DefaultSchema returns the catalog import schema: Implementation and
// ImageRef must appear in the header; the remaining record fields are
// optional. ImageRef is allowed but feeds the screenshot resolver only.
func DefaultSchema() *Schema {
	return NewSchema(
		[]string{"Implementation", FieldImageRef},
		[]string{
			"Implementation", "Description", "Industry", "Region",
			"Country", "Products", "KickOffDate", "GoLiveDate", "Keywords",
			FieldImageRef,
		},
	)
}

// NewSchema builds a schema from required and allowed field lists. Every
// required field is implicitly allowed.
func NewSchema(required, allowed []string) *Schema {
	s := &Schema{
		required: make(map[string]bool, len(required)),
		allowed:  make(map[string]bool, len(allowed)),
	}
	for _, f := range required {
		s.required[f] = true
		s.allowed[f] = true
	}
	for _, f := range allowed {
		s.allowed[f] = true
	}
	return s
}

// Required returns the required field names in sorted order.
func (s *Schema) Required() []string {
	return sortedKeys(s.required)
}

// Allowed returns the allowed field names in sorted order.
func (s *Schema) Allowed() []string {
	return sortedKeys(s.allowed)
}

// IsRequired reports whether field must appear in the header.
func (s *Schema) IsRequired(field string) bool {
	return s.required[field]
}

// IsAllowed reports whether field is known to the schema.
func (s *Schema) IsAllowed(field string) bool {
	return s.allowed[field]
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
