package license

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a license.
type Status string

const (
	StatusTrial   Status = "trial"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// PaymentStatus represents the billing state of a license.
type PaymentStatus string

const (
	PaymentPaid       PaymentStatus = "paid"
	PaymentPending    PaymentStatus = "pending"
	PaymentDelinquent PaymentStatus = "delinquent"
)

// License is a tenant's subscription record granting access to a package
// of modules for a validity window. Written only by billing and
// administrative flows; this package reads it.
type License struct {
	ID            uuid.UUID     `json:"id"`
	TenantID      uuid.UUID     `json:"tenant_id"`
	PackageID     string        `json:"package_id"`
	Status        Status        `json:"status"`
	StartsAt      time.Time     `json:"starts_at"`
	EndsAt        time.Time     `json:"ends_at"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	// GraceUntil extends access for delinquent licenses. Zero means no grace.
	GraceUntil time.Time `json:"grace_until"`
}

// Expired reports whether the license window has closed or the stored
// status says so. The date check wins over a stale status field: a license
// persisted as active but with EndsAt in the past is expired.
func (l *License) Expired(now time.Time) bool {
	if l.Status == StatusExpired {
		return true
	}
	if l.Status != StatusActive && l.Status != StatusTrial {
		return true
	}
	return now.After(l.EndsAt)
}

// Delinquent reports whether payment is overdue beyond any grace window.
func (l *License) Delinquent(now time.Time) bool {
	if l.PaymentStatus != PaymentDelinquent {
		return false
	}
	if l.GraceUntil.IsZero() {
		return true
	}
	return now.After(l.GraceUntil)
}

// Package is a named bundle of modules a license can entitle.
type Package struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Modules []string `json:"modules"`
}

// Entitles reports whether the package covers the given module.
func (p Package) Entitles(moduleKey string) bool {
	for _, m := range p.Modules {
		if m == moduleKey {
			return true
		}
	}
	return false
}

// Store reads license records from the core store.
type Store interface {
	// FindActiveLicense returns the tenant's current license.
	// Returns ErrLicenseNotFound when the tenant has none.
	FindActiveLicense(ctx context.Context, tenantID uuid.UUID) (*License, error)
}

// PackageSource loads the package catalog once at gate construction.
type PackageSource interface {
	Load(ctx context.Context) (map[string]Package, error)
}

// PackageSourceFunc adapts a function to the PackageSource interface.
type PackageSourceFunc func(ctx context.Context) (map[string]Package, error)

func (f PackageSourceFunc) Load(ctx context.Context) (map[string]Package, error) {
	return f(ctx)
}

// StaticPackages returns a PackageSource over a fixed package set.
func StaticPackages(packages ...Package) PackageSource {
	return PackageSourceFunc(func(context.Context) (map[string]Package, error) {
		m := make(map[string]Package, len(packages))
		for _, p := range packages {
			m[p.ID] = p
		}
		return m, nil
	})
}
