package permission

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemorySource is an in-memory rule source for tests and local development.
type MemorySource struct {
	mu     sync.RWMutex
	tenant map[uuid.UUID]Layer            // tenant defaults, by tenant
	user   map[uuid.UUID]Layer            // per-user overrides
	roles  map[uuid.UUID]map[string]Layer // role layers by tenant and role name
	byRole map[uuid.UUID]string           // user to role name
}

// NewMemorySource returns an empty in-memory rule source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		tenant: make(map[uuid.UUID]Layer),
		user:   make(map[uuid.UUID]Layer),
		roles:  make(map[uuid.UUID]map[string]Layer),
		byRole: make(map[uuid.UUID]string),
	}
}

// SetTenantLayer sets the tenant-default layer.
func (s *MemorySource) SetTenantLayer(tenantID uuid.UUID, layer Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenant[tenantID] = layer
}

// SetRoleLayer sets a role-default layer within a tenant.
func (s *MemorySource) SetRoleLayer(tenantID uuid.UUID, role string, layer Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roles[tenantID] == nil {
		s.roles[tenantID] = make(map[string]Layer)
	}
	s.roles[tenantID][role] = layer
}

// SetUserRole assigns a user to a role.
func (s *MemorySource) SetUserRole(userID uuid.UUID, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byRole[userID] = role
}

// SetUserLayer sets a user's override layer.
func (s *MemorySource) SetUserLayer(userID uuid.UUID, layer Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user[userID] = layer
}

// LoadRuleSet implements RuleSource.
func (s *MemorySource) LoadRuleSet(ctx context.Context, tenantID, userID uuid.UUID) (RuleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rs := RuleSet{
		Tenant: s.tenant[tenantID],
		User:   s.user[userID],
	}
	if role, ok := s.byRole[userID]; ok {
		rs.Role = s.roles[tenantID][role]
	}
	return rs, nil
}
