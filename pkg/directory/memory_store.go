package directory

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory tenant store for tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	bySlug   map[string]*Tenant
	byDomain map[string]*Tenant
}

// NewMemoryStore returns an empty in-memory tenant store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bySlug:   make(map[string]*Tenant),
		byDomain: make(map[string]*Tenant),
	}
}

// Put stores or replaces a tenant, indexing by slug and custom domain.
func (s *MemoryStore) Put(t *Tenant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bySlug[t.Slug] = t
	if t.CustomDomain != "" {
		s.byDomain[t.CustomDomain] = t
	}
}

// SetStatus updates a tenant's status in place.
func (s *MemoryStore) SetStatus(slug string, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, exists := s.bySlug[slug]; exists {
		t.Status = status
	}
}

// FindTenantBySlug implements Store.
func (s *MemoryStore) FindTenantBySlug(ctx context.Context, slug string) (*Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.bySlug[slug]
	if !exists {
		return nil, ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

// FindTenantByCustomDomain implements Store.
func (s *MemoryStore) FindTenantByCustomDomain(ctx context.Context, host string) (*Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.byDomain[host]
	if !exists {
		return nil, ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}
