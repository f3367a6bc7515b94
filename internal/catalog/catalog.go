// Package catalog defines the interface for catalog record stores.
package catalog

import (
	"context"
	"fmt"

	"github.com/golives/glc/internal/types"
)

// Store is a remote catalog of imported records, keyed by record id. The
// collection is ordered: Records returns entries in store order and the
// allocator trusts the last entry to carry the current maximum id.
type Store interface {
	// Records returns every record in store order.
	Records(ctx context.Context) ([]*types.Record, error)

	// Update persists rec at the location keyed by id with merge
	// semantics: fields absent from rec are left untouched at the
	// destination.
	Update(ctx context.Context, id int, rec *types.Record) error

	// Delete removes the record keyed by id.
	Delete(ctx context.Context, id int) error

	// Close releases the store's resources.
	Close() error
}

// NextID reads the catalog and returns the next free record id: the last
// record's id plus one, or 1 when the catalog is empty.
func NextID(ctx context.Context, store Store) (int, error) {
	records, err := store.Records(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(records) == 0 {
		return 1, nil
	}
	return records[len(records)-1].ID + 1, nil
}
