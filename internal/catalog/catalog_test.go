package catalog_test

import (
	"context"
	"testing"

	"github.com/golives/glc/internal/catalog"
	"github.com/golives/glc/internal/catalog/memory"
	"github.com/golives/glc/internal/types"
)

func TestNextID(t *testing.T) {
	ctx := context.Background()

	t.Run("increments last id", func(t *testing.T) {
		store := memory.New()
		store.Seed(
			&types.Record{ID: 40, Implementation: "A"},
			&types.Record{ID: 41, Implementation: "B"},
		)
		id, err := catalog.NextID(ctx, store)
		if err != nil {
			t.Fatalf("NextID() error = %v", err)
		}
		if id != 42 {
			t.Errorf("NextID() = %d, want 42", id)
		}
	})

	t.Run("empty store starts at 1", func(t *testing.T) {
		id, err := catalog.NextID(ctx, memory.New())
		if err != nil {
			t.Fatalf("NextID() error = %v", err)
		}
		if id != 1 {
			t.Errorf("NextID() = %d, want 1", id)
		}
	})

	t.Run("trusts the last element", func(t *testing.T) {
		// Store order wins over numeric order, matching the remote
		// catalog's contract.
		store := memory.New()
		store.Seed(
			&types.Record{ID: 50, Implementation: "A"},
			&types.Record{ID: 7, Implementation: "B"},
		)
		id, err := catalog.NextID(ctx, store)
		if err != nil {
			t.Fatalf("NextID() error = %v", err)
		}
		if id != 8 {
			t.Errorf("NextID() = %d, want 8", id)
		}
	})

	t.Run("closed store fails", func(t *testing.T) {
		store := memory.New()
		_ = store.Close()
		if _, err := catalog.NextID(ctx, store); err == nil {
			t.Fatal("expected error from closed store")
		}
	})
}
