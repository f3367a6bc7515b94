// Package screenshot locates the image file paired with a catalog record.
//
// Screenshot folders follow the convention "NN - <free text>.png" where NN
// is the row's image reference left-padded to two digits.
package screenshot

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/golives/glc/internal/types"
)

// ErrNotFound indicates no screenshot in the folder matches the record's
// image reference.
var ErrNotFound = errors.New("screenshot not found")

// Pattern returns the glob pattern for an image reference, e.g. "7" yields
// "07 - *.png" and "12" yields "12 - *.png".
func Pattern(imageRef string) string {
	ref := imageRef
	if len(ref) == 1 {
		ref = "0" + ref
	}
	return ref + " - *.png"
}

// Resolve finds the screenshot for row in folder. Exactly one file must
// match the reference pattern: no match returns ErrNotFound, and multiple
// matches are an error listing every candidate in sorted order rather than
// a silent pick.
func Resolve(row types.RawRow, folder string) (string, error) {
	ref := row[types.FieldImageRef]
	if ref == "" {
		return "", fmt.Errorf("row %q has no %s value: %w",
			row["Implementation"], types.FieldImageRef, ErrNotFound)
	}

	pattern := filepath.Join(folder, Pattern(ref))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("bad screenshot pattern %q: %w", pattern, err)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no file matches %q: %w", pattern, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("ambiguous screenshot reference %q: %d files match %q: %v",
			ref, len(matches), pattern, matches)
	}
}
