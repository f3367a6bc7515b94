// Package assets defines the interface for screenshot storage backends.
package assets

import (
	"context"
	"fmt"
	"time"
)

// Uploader pushes local screenshot files to the object store and hands out
// durable retrieval URLs.
type Uploader interface {
	// Upload copies the file at localPath to key and returns a signed
	// read URL with a far-future expiry.
	Upload(ctx context.Context, localPath, key string) (string, error)

	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error

	// Close releases the uploader's resources.
	Close() error
}

// DestinationKey derives the object key for a record's screenshot:
// images/{epochMillis}_{implementation}.png. The timestamp keeps keys from
// colliding across runs for the same implementation name.
func DestinationKey(implementation string, now time.Time) string {
	return fmt.Sprintf("images/%d_%s.png", now.UnixMilli(), implementation)
}
