package license

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory license store for tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	licenses map[uuid.UUID]*License
}

// NewMemoryStore returns an empty in-memory license store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{licenses: make(map[uuid.UUID]*License)}
}

// Put stores or replaces a tenant's license.
func (s *MemoryStore) Put(lic *License) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.licenses[lic.TenantID] = lic
}

// Remove deletes a tenant's license.
func (s *MemoryStore) Remove(tenantID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.licenses, tenantID)
}

// FindActiveLicense implements Store.
func (s *MemoryStore) FindActiveLicense(ctx context.Context, tenantID uuid.UUID) (*License, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lic, exists := s.licenses[tenantID]
	if !exists {
		return nil, ErrLicenseNotFound
	}

	// Copy so callers cannot mutate shared state.
	cp := *lic
	return &cp, nil
}
