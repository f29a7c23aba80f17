package store

import (
	"context"
	"sync"

	"github.com/ukaji3/recetario-go/pkg/recetario/models"
)

// MemoryStore keeps the encoded family list in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the stored families.
func (m *MemoryStore) Save(_ context.Context, families []models.Family) error {
	data, err := encode(families)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}

// Load returns a fresh copy of the stored families.
func (m *MemoryStore) Load(_ context.Context) ([]models.Family, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return decode(m.data)
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
