// Package memory implements the screenshot uploader with an in-memory map,
// for --dry-run rehearsals and the engine tests.
package memory

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// MemoryUploader implements assets.Uploader without touching any bucket.
// Uploaded keys map to fake signed URLs.
type MemoryUploader struct {
	mu      sync.Mutex
	objects map[string]string // key -> url
}

// New creates an empty in-memory uploader.
func New() *MemoryUploader {
	return &MemoryUploader{objects: make(map[string]string)}
}

// Upload records the key and returns a deterministic fake URL. The local
// file must exist, so a rehearsal still catches a bad screenshot path.
func (m *MemoryUploader) Upload(ctx context.Context, localPath, key string) (string, error) {
	if _, err := os.Stat(localPath); err != nil {
		return "", fmt.Errorf("failed to read screenshot %s: %w", localPath, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	url := "memory://" + key
	m.objects[key] = url
	return url, nil
}

// Delete removes the key. Deleting an unknown key is an error, so tests
// can assert compensation targets the uploaded object.
func (m *MemoryUploader) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return fmt.Errorf("object %s does not exist", key)
	}
	delete(m.objects, key)
	return nil
}

// Has reports whether key is currently stored.
func (m *MemoryUploader) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

// Close is a no-op.
func (m *MemoryUploader) Close() error {
	return nil
}
