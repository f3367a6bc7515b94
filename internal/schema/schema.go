// Package schema validates a CSV header against the catalog field schema.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/golives/glc/internal/types"
)

// ValidationError reports required header fields that are missing from the
// import file. It is fatal: no row is processed after it.
type ValidationError struct {
	Missing  []string
	Required []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("import file is missing required field(s): %s (required header fields: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Required, ", "))
}

// Warning flags a header column the import will ignore, with the closest
// allowed field names as suggestions.
type Warning struct {
	Column      string
	Suggestions []string
}

func (w Warning) String() string {
	if len(w.Suggestions) == 0 {
		return fmt.Sprintf("column %q will be ignored", w.Column)
	}
	return fmt.Sprintf("column %q will be ignored (did you mean %s?)",
		w.Column, strings.Join(w.Suggestions, " or "))
}

// Validate checks header against s. Missing required fields produce a
// *ValidationError and an empty warning list. Columns outside the allowed
// set produce non-fatal warnings; processing continues with them ignored.
func Validate(header []string, s *types.Schema) ([]Warning, error) {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, f := range s.Required() {
		if !present[f] {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing, Required: s.Required()}
	}

	var warnings []Warning
	for _, h := range header {
		if !s.IsAllowed(h) {
			warnings = append(warnings, Warning{
				Column:      h,
				Suggestions: suggest(h, s.Allowed()),
			})
		}
	}
	return warnings, nil
}

// suggest ranks the allowed field names against the unknown column and
// returns up to two close matches.
func suggest(column string, allowed []string) []string {
	ranks := fuzzy.RankFindNormalizedFold(column, allowed)
	if len(ranks) == 0 {
		return nil
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i].Distance < ranks[j].Distance })
	max := 2
	if len(ranks) < max {
		max = len(ranks)
	}
	out := make([]string, 0, max)
	for _, r := range ranks[:max] {
		out = append(out, r.Target)
	}
	return out
}
