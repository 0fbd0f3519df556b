package directory

import (
	"context"
	"errors"

	"github.com/aka-uba/omnex-core-platform-sub016/pkg/tenantid"
)

// InactiveReason distinguishes why a tenant cannot serve requests.
type InactiveReason string

const (
	ReasonSuspended   InactiveReason = "suspended"
	ReasonSetupFailed InactiveReason = "setup_failed"
)

// Kind classifies a lookup outcome.
type Kind int

const (
	KindFound Kind = iota
	KindNotFound
	KindInactive
)

// Outcome is the typed result of a tenant lookup. Tenant is set for found
// and inactive outcomes; Reason only for inactive ones.
type Outcome struct {
	Kind   Kind
	Tenant *Tenant
	Reason InactiveReason
}

// Found builds a found outcome.
func Found(t *Tenant) Outcome { return Outcome{Kind: KindFound, Tenant: t} }

// NotFound builds a not-found outcome.
func NotFound() Outcome { return Outcome{Kind: KindNotFound} }

// Inactive builds an inactive outcome with its reason.
func Inactive(t *Tenant, reason InactiveReason) Outcome {
	return Outcome{Kind: KindInactive, Tenant: t, Reason: reason}
}

// Directory resolves tenant identities against the core store.
type Directory struct {
	store Store
}

// New wraps a tenant store. Panics on nil to fail fast during wiring.
func New(store Store) *Directory {
	if store == nil {
		panic("directory: Store is required")
	}
	return &Directory{store: store}
}

// Lookup fetches the tenant record for a resolved identity. The lookup
// field follows the identity source: custom-domain identities match the
// registered hostname, every other source matches the slug. The returned
// error is non-nil only for store failures; missing or inactive tenants
// are expressed through the Outcome.
func (d *Directory) Lookup(ctx context.Context, id tenantid.Identity) (Outcome, error) {
	var (
		tenant *Tenant
		err    error
	)

	switch id.Source {
	case tenantid.SourceCustomDomain:
		tenant, err = d.store.FindTenantByCustomDomain(ctx, id.Identifier)
	default:
		tenant, err = d.store.FindTenantBySlug(ctx, id.Identifier)
	}

	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return NotFound(), nil
		}
		return Outcome{}, errors.Join(ErrFailedToFindTenant, err)
	}

	switch tenant.Status {
	case StatusActive:
		return Found(tenant), nil
	case StatusSetupFailed:
		return Inactive(tenant, ReasonSetupFailed), nil
	default:
		// Suspended and any unknown future status stop serving requests.
		return Inactive(tenant, ReasonSuspended), nil
	}
}
