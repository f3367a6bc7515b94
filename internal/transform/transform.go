// Package transform maps a raw CSV row into a canonical catalog record.
//
// Transformation never fails: every field-level anomaly degrades to a
// warning plus a safe default, so the workflow always has a record to show
// the operator for review.
package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/golives/glc/internal/types"
)

// DateFormat is the catalog's display format for dates.
const DateFormat = "Mon Jan 02 2006"

// dateLayouts are the input layouts accepted from CSV exports, tried in
// order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
	DateFormat,
}

// Warning is a non-fatal anomaly found while transforming a row.
type Warning string

// Transform builds a Record from row. Allowed fields present and non-empty
// on the row are merged onto the template: dates are parsed and reformatted
// (invalid values warn and stay empty), Keywords is split on commas with
// tokens trimmed and order preserved, everything else is copied verbatim.
// If both dates parse and KickOffDate is not strictly before GoLiveDate,
// both are cleared with a warning. The allocated id, operator identity, and
// image URL are stamped last.
func Transform(row types.RawRow, id int, creator, email, imageURL string) (*types.Record, []Warning) {
	rec := types.NewRecord()
	var warnings []Warning

	name := row["Implementation"]
	var kickOff, goLive time.Time

	for field, value := range row {
		if value == "" || field == types.FieldImageRef {
			continue
		}
		switch field {
		case "Implementation":
			rec.Implementation = value
		case "Description":
			rec.Description = value
		case "Industry":
			rec.Industry = value
		case "Region":
			rec.Region = value
		case "Country":
			rec.Country = value
		case "Products":
			rec.Products = value
		case "KickOffDate":
			rec.KickOffDate, kickOff = formatDate(name, field, value, &warnings)
		case "GoLiveDate":
			rec.GoLiveDate, goLive = formatDate(name, field, value, &warnings)
		case "Keywords":
			rec.Keywords = splitKeywords(value)
		}
	}

	if rec.KickOffDate != "" && rec.GoLiveDate != "" && !kickOff.Before(goLive) {
		warnings = append(warnings, Warning(fmt.Sprintf(
			"ignoring invalid KickOffDate %q and GoLiveDate %q for %q: kick-off must precede go-live",
			rec.KickOffDate, rec.GoLiveDate, name)))
		rec.KickOffDate = ""
		rec.GoLiveDate = ""
	}

	rec.ID = id
	rec.CreatedBy = creator
	rec.CreatedByEmail = email
	rec.ImageURL = imageURL
	return rec, warnings
}

func formatDate(record, field, value string, warnings *[]Warning) (string, time.Time) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(DateFormat), t
		}
	}
	*warnings = append(*warnings, Warning(fmt.Sprintf(
		"invalid value %q as %s for %q", value, field, record)))
	return "", time.Time{}
}

// splitKeywords splits a comma-separated keyword list, trimming whitespace
// from each token. Order and duplicates are preserved.
func splitKeywords(value string) []string {
	parts := strings.Split(value, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		keywords = append(keywords, strings.TrimSpace(p))
	}
	return keywords
}
