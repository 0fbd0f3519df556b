package permission

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Caller identifies who is asking, resolved from the request: the user and
// the tenant (and optional company) scope the request was admitted under.
type Caller struct {
	UserID    uuid.UUID
	TenantID  uuid.UUID
	CompanyID uuid.UUID
}

// ResourceRef scopes a permission check to a specific resource. TenantID
// is required; CompanyID applies only where the data model has a secondary
// company scope.
type ResourceRef struct {
	TenantID  uuid.UUID
	CompanyID uuid.UUID
}

// RuleSource loads the three permission layers for a user within a tenant.
type RuleSource interface {
	LoadRuleSet(ctx context.Context, tenantID, userID uuid.UUID) (RuleSet, error)
}

// Resolver answers permission questions by merging layered rules. It is
// stateless: every check loads fresh rule data from its source.
type Resolver struct {
	source RuleSource
}

// NewResolver wraps a rule source. Panics on nil to fail fast during wiring.
func NewResolver(source RuleSource) *Resolver {
	if source == nil {
		panic("permission: RuleSource is required")
	}
	return &Resolver{source: source}
}

// HasPermission reports whether the caller holds the permission key,
// optionally scoped to a resource. Absent keys deny. When a resource
// reference is supplied its tenant (and company, when both sides carry
// one) must match the caller's scope; isolation failures deny before any
// grant is consulted.
func (r *Resolver) HasPermission(ctx context.Context, caller Caller, key string, res *ResourceRef) (bool, error) {
	if res != nil && !sameScope(caller, *res) {
		return false, nil
	}

	rs, err := r.source.LoadRuleSet(ctx, caller.TenantID, caller.UserID)
	if err != nil {
		return false, errors.Join(ErrFailedToLoadRules, err)
	}

	value, found := Resolve(rs, key)
	if !found {
		return false, nil
	}
	return value.Allowed, nil
}

// UserPermissions returns the caller's full effective permission view,
// merged across all three layers. Intended for UI capability rendering.
func (r *Resolver) UserPermissions(ctx context.Context, caller Caller) (map[string]Value, error) {
	rs, err := r.source.LoadRuleSet(ctx, caller.TenantID, caller.UserID)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadRules, err)
	}
	return Merge(rs), nil
}

// sameScope enforces tenant and company isolation between a caller and a
// resource. Grants never cross tenants; company mismatch denies only when
// both sides carry a company scope.
func sameScope(caller Caller, res ResourceRef) bool {
	if res.TenantID != caller.TenantID {
		return false
	}
	if res.CompanyID != uuid.Nil && caller.CompanyID != uuid.Nil && res.CompanyID != caller.CompanyID {
		return false
	}
	return true
}
