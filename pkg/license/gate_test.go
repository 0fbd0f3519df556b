package license_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aka-uba/omnex-core-platform-sub016/pkg/license"
)

func testRegistry() *license.Registry {
	registry := license.NewRegistry()
	registry.Register(license.Manifest{Slug: "accounting", Name: "Accounting", Version: "1.0.0"})
	registry.Register(license.Manifest{Slug: "hr", Name: "Human Resources", Version: "1.0.0"})
	registry.Register(license.Manifest{Slug: "realestate", Name: "Real Estate", Version: "1.0.0"})
	return registry
}

func testPackages() license.PackageSource {
	return license.StaticPackages(
		license.Package{ID: "starter", Name: "Starter", Modules: []string{"accounting"}},
		license.Package{ID: "business", Name: "Business", Modules: []string{"accounting", "hr", "realestate"}},
	)
}

func newTestGate(t *testing.T, store license.Store, now time.Time) *license.Gate {
	t.Helper()

	gate, err := license.NewGate(context.Background(), store, testPackages(), testRegistry(),
		license.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return gate
}

func TestGate_CheckModule(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tenantID := uuid.New()

	validLicense := func(packageID string) *license.License {
		return &license.License{
			ID:            uuid.New(),
			TenantID:      tenantID,
			PackageID:     packageID,
			Status:        license.StatusActive,
			StartsAt:      now.AddDate(0, -1, 0),
			EndsAt:        now.AddDate(0, 11, 0),
			PaymentStatus: license.PaymentPaid,
		}
	}

	t.Run("allowed for entitled module", func(t *testing.T) {
		t.Parallel()

		store := license.NewMemoryStore()
		store.Put(validLicense("business"))
		gate := newTestGate(t, store, now)

		decision, err := gate.CheckModule(context.Background(), tenantID, "hr")
		require.NoError(t, err)
		assert.Equal(t, license.DecisionAllowed, decision)
		assert.True(t, decision.Allowed())
	})

	t.Run("no license at all", func(t *testing.T) {
		t.Parallel()

		gate := newTestGate(t, license.NewMemoryStore(), now)

		decision, err := gate.CheckModule(context.Background(), tenantID, "hr")
		require.NoError(t, err)
		assert.Equal(t, license.DecisionLicenseRequired, decision)
	})

	t.Run("ends date in the past beats stale active status", func(t *testing.T) {
		t.Parallel()

		lic := validLicense("business")
		lic.Status = license.StatusActive
		lic.EndsAt = now.AddDate(0, 0, -1)
		store := license.NewMemoryStore()
		store.Put(lic)
		gate := newTestGate(t, store, now)

		decision, err := gate.CheckModule(context.Background(), tenantID, "hr")
		require.NoError(t, err)
		assert.Equal(t, license.DecisionLicenseExpired, decision)
	})

	t.Run("trial license is allowed", func(t *testing.T) {
		t.Parallel()

		lic := validLicense("business")
		lic.Status = license.StatusTrial
		store := license.NewMemoryStore()
		store.Put(lic)
		gate := newTestGate(t, store, now)

		decision, err := gate.CheckModule(context.Background(), tenantID, "accounting")
		require.NoError(t, err)
		assert.Equal(t, license.DecisionAllowed, decision)
	})

	t.Run("delinquent beyond grace is expired", func(t *testing.T) {
		t.Parallel()

		lic := validLicense("business")
		lic.PaymentStatus = license.PaymentDelinquent
		lic.GraceUntil = now.AddDate(0, 0, -3)
		store := license.NewMemoryStore()
		store.Put(lic)
		gate := newTestGate(t, store, now)

		decision, err := gate.CheckModule(context.Background(), tenantID, "hr")
		require.NoError(t, err)
		assert.Equal(t, license.DecisionLicenseExpired, decision)
	})

	t.Run("delinquent inside grace is allowed", func(t *testing.T) {
		t.Parallel()

		lic := validLicense("business")
		lic.PaymentStatus = license.PaymentDelinquent
		lic.GraceUntil = now.AddDate(0, 0, 7)
		store := license.NewMemoryStore()
		store.Put(lic)
		gate := newTestGate(t, store, now)

		decision, err := gate.CheckModule(context.Background(), tenantID, "hr")
		require.NoError(t, err)
		assert.Equal(t, license.DecisionAllowed, decision)
	})

	t.Run("delinquent without grace window is expired immediately", func(t *testing.T) {
		t.Parallel()

		lic := validLicense("business")
		lic.PaymentStatus = license.PaymentDelinquent
		store := license.NewMemoryStore()
		store.Put(lic)
		gate := newTestGate(t, store, now)

		decision, err := gate.CheckModule(context.Background(), tenantID, "hr")
		require.NoError(t, err)
		assert.Equal(t, license.DecisionLicenseExpired, decision)
	})

	t.Run("valid license but module not entitled", func(t *testing.T) {
		t.Parallel()

		store := license.NewMemoryStore()
		store.Put(validLicense("starter"))
		gate := newTestGate(t, store, now)

		decision, err := gate.CheckModule(context.Background(), tenantID, "hr")
		require.NoError(t, err)
		assert.Equal(t, license.DecisionModuleNotLicensed, decision)
	})

	t.Run("unknown module", func(t *testing.T) {
		t.Parallel()

		store := license.NewMemoryStore()
		store.Put(validLicense("business"))
		gate := newTestGate(t, store, now)

		decision, err := gate.CheckModule(context.Background(), tenantID, "spaceships")
		require.NoError(t, err)
		assert.Equal(t, license.DecisionModuleUnknown, decision)
	})

	t.Run("dangling package reference is an error", func(t *testing.T) {
		t.Parallel()

		store := license.NewMemoryStore()
		store.Put(validLicense("deleted-package"))
		gate := newTestGate(t, store, now)

		_, err := gate.CheckModule(context.Background(), tenantID, "hr")
		require.ErrorIs(t, err, license.ErrPackageNotFound)
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("list is sorted by slug", func(t *testing.T) {
		t.Parallel()

		registry := license.NewRegistry()
		registry.Register(license.Manifest{Slug: "hr", Name: "HR"})
		registry.Register(license.Manifest{Slug: "accounting", Name: "Accounting"})

		modules := registry.ListInstalledModules()
		require.Len(t, modules, 2)
		assert.Equal(t, "accounting", modules[0].Slug)
		assert.Equal(t, "hr", modules[1].Slug)
	})

	t.Run("manifest lookup", func(t *testing.T) {
		t.Parallel()

		registry := license.NewRegistry()
		registry.Register(license.Manifest{Slug: "hr", Name: "HR", Version: "2.1.0"})

		m, err := registry.GetModuleManifest("hr")
		require.NoError(t, err)
		assert.Equal(t, "2.1.0", m.Version)

		_, err = registry.GetModuleManifest("nope")
		require.ErrorIs(t, err, license.ErrModuleNotRegistered)
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		t.Parallel()

		registry := license.NewRegistry()
		registry.Register(license.Manifest{Slug: "hr"})
		assert.Panics(t, func() {
			registry.Register(license.Manifest{Slug: "hr"})
		})
	})
}
