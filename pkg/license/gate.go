package license

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Decision is the outcome of a module entitlement check.
type Decision string

const (
	// DecisionAllowed means the tenant may use the module.
	DecisionAllowed Decision = "allowed"
	// DecisionLicenseRequired means the tenant has no license at all.
	DecisionLicenseRequired Decision = "license_required"
	// DecisionLicenseExpired means a license exists but its window has
	// closed or payment is delinquent beyond the grace period.
	DecisionLicenseExpired Decision = "license_expired"
	// DecisionModuleNotLicensed means the license is valid but its package
	// does not cover the requested module.
	DecisionModuleNotLicensed Decision = "module_not_licensed"
	// DecisionModuleUnknown means no such module is installed.
	DecisionModuleUnknown Decision = "module_unknown"
)

// Allowed reports whether the decision permits the request to proceed.
func (d Decision) Allowed() bool { return d == DecisionAllowed }

// Gate verifies that a tenant's active entitlement covers a module.
type Gate struct {
	store    Store
	registry *Registry
	packages map[string]Package
	now      func() time.Time
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithClock overrides the gate's time source. Intended for tests.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGate builds a Gate, loading the package catalog once.
// Panics on nil required dependencies to fail fast during initialization.
func NewGate(ctx context.Context, store Store, src PackageSource, registry *Registry, opts ...GateOption) (*Gate, error) {
	if store == nil {
		panic("license: Store is required")
	}
	if src == nil {
		panic("license: PackageSource is required")
	}
	if registry == nil {
		panic("license: Registry is required")
	}

	packages, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPackages, err)
	}

	g := &Gate{
		store:    store,
		registry: registry,
		packages: packages,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// CheckModule decides whether a tenant may use a module. The returned error
// is non-nil only for infrastructure failures (store errors, catalog
// inconsistencies); entitlement outcomes are expressed through the Decision.
func (g *Gate) CheckModule(ctx context.Context, tenantID uuid.UUID, moduleKey string) (Decision, error) {
	if !g.registry.Installed(moduleKey) {
		return DecisionModuleUnknown, nil
	}

	lic, err := g.store.FindActiveLicense(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrLicenseNotFound) {
			return DecisionLicenseRequired, nil
		}
		return "", err
	}

	now := g.now()
	if lic.Expired(now) || lic.Delinquent(now) {
		return DecisionLicenseExpired, nil
	}

	pkg, exists := g.packages[lic.PackageID]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrPackageNotFound, lic.PackageID)
	}

	if !pkg.Entitles(moduleKey) {
		return DecisionModuleNotLicensed, nil
	}

	return DecisionAllowed, nil
}
