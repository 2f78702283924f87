// Package memory implements an in-memory document backend.
package memory

import (
	"context"
	"slices"
	"sync"

	"storeflow/pkg/store"
)

// Backend keeps the last saved document in memory.
type Backend struct {
	mu    sync.RWMutex
	data  []byte
	saves int
}

// New creates an empty backend. Loading it reports store.ErrNoDocument
// until the first save.
func New() *Backend {
	return &Backend{}
}

// NewWithDocument creates a backend that already holds data.
func NewWithDocument(data []byte) *Backend {
	return &Backend{data: slices.Clone(data)}
}

// Load returns a copy of the stored document.
func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.data == nil {
		return nil, store.ErrNoDocument
	}
	return slices.Clone(b.data), nil
}

// Save replaces the stored document.
func (b *Backend) Save(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = slices.Clone(data)
	b.saves++
	return nil
}

// Bytes returns a copy of the stored document, or nil.
func (b *Backend) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.data)
}

// Saves counts completed Save calls.
func (b *Backend) Saves() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.saves
}
