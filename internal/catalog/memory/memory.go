// Package memory implements the catalog store with in-memory data
// structures. It backs --dry-run rehearsals and the engine tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/golives/glc/internal/types"
)

// MemoryStore implements catalog.Store with an ordered in-memory slice.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*types.Record
	closed  bool
}

// New creates an empty in-memory catalog.
func New() *MemoryStore {
	return &MemoryStore{}
}

// Seed appends records in order, for test and dry-run setup.
func (m *MemoryStore) Seed(records ...*types.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
}

// Records returns the catalog entries in insertion order.
func (m *MemoryStore) Records(ctx context.Context) ([]*types.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, fmt.Errorf("store is closed")
	}
	out := make([]*types.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Update upserts rec at id. An existing record is merged field by field;
// a new record is appended in store order.
func (m *MemoryStore) Update(ctx context.Context, id int, rec *types.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("store is closed")
	}
	for i, existing := range m.records {
		if existing.ID == id {
			m.records[i] = merge(existing, rec)
			return nil
		}
	}
	cp := *rec
	cp.ID = id
	m.records = append(m.records, &cp)
	return nil
}

// Delete removes the record keyed by id. Deleting an absent id is a no-op,
// mirroring the remote catalog's remove semantics.
func (m *MemoryStore) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("store is closed")
	}
	for i, existing := range m.records {
		if existing.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return nil
}

// Close marks the store closed; further calls fail.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// merge overlays non-zero fields of update onto base, the in-memory
// equivalent of the remote store's merge-style update.
func merge(base, update *types.Record) *types.Record {
	out := *base
	if update.ID != 0 {
		out.ID = update.ID
	}
	if update.Implementation != "" {
		out.Implementation = update.Implementation
	}
	if update.Description != "" {
		out.Description = update.Description
	}
	if update.Industry != "" {
		out.Industry = update.Industry
	}
	if update.Region != "" {
		out.Region = update.Region
	}
	if update.Country != "" {
		out.Country = update.Country
	}
	if update.Products != "" {
		out.Products = update.Products
	}
	if update.KickOffDate != "" {
		out.KickOffDate = update.KickOffDate
	}
	if update.GoLiveDate != "" {
		out.GoLiveDate = update.GoLiveDate
	}
	if len(update.Keywords) > 0 {
		out.Keywords = update.Keywords
	}
	if update.CreatedBy != "" {
		out.CreatedBy = update.CreatedBy
	}
	if update.CreatedByEmail != "" {
		out.CreatedByEmail = update.CreatedByEmail
	}
	if update.ImageURL != "" {
		out.ImageURL = update.ImageURL
	}
	return &out
}
