package directory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aka-uba/omnex-core-platform-sub016/pkg/directory"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/tenantid"
)

func seedStore() *directory.MemoryStore {
	store := directory.NewMemoryStore()
	store.Put(&directory.Tenant{
		ID:           uuid.New(),
		Slug:         "acme",
		Name:         "Acme Corp",
		Subdomain:    "acme",
		CustomDomain: "crm.acmecorp.com",
		Status:       directory.StatusActive,
		Database:     "postgres://tenant_acme",
	})
	store.Put(&directory.Tenant{
		ID:       uuid.New(),
		Slug:     "globex",
		Name:     "Globex",
		Status:   directory.StatusSuspended,
		Database: "postgres://tenant_globex",
	})
	store.Put(&directory.Tenant{
		ID:       uuid.New(),
		Slug:     "initech",
		Name:     "Initech",
		Status:   directory.StatusSetupFailed,
		Database: "",
	})
	return store
}

func TestDirectory_Lookup(t *testing.T) {
	t.Parallel()

	dir := directory.New(seedStore())

	t.Run("found by slug", func(t *testing.T) {
		t.Parallel()

		outcome, err := dir.Lookup(context.Background(),
			tenantid.Identity{Identifier: "acme", Source: tenantid.SourceSubdomain})
		require.NoError(t, err)
		assert.Equal(t, directory.KindFound, outcome.Kind)
		require.NotNil(t, outcome.Tenant)
		assert.Equal(t, "postgres://tenant_acme", outcome.Tenant.Database)
	})

	t.Run("found by custom domain", func(t *testing.T) {
		t.Parallel()

		outcome, err := dir.Lookup(context.Background(),
			tenantid.Identity{Identifier: "crm.acmecorp.com", Source: tenantid.SourceCustomDomain})
		require.NoError(t, err)
		assert.Equal(t, directory.KindFound, outcome.Kind)
		require.NotNil(t, outcome.Tenant)
		assert.Equal(t, "acme", outcome.Tenant.Slug)
	})

	t.Run("custom domain does not match slugs", func(t *testing.T) {
		t.Parallel()

		outcome, err := dir.Lookup(context.Background(),
			tenantid.Identity{Identifier: "acme", Source: tenantid.SourceCustomDomain})
		require.NoError(t, err)
		assert.Equal(t, directory.KindNotFound, outcome.Kind)
	})

	t.Run("not found is an outcome, not an error", func(t *testing.T) {
		t.Parallel()

		outcome, err := dir.Lookup(context.Background(),
			tenantid.Identity{Identifier: "nope", Source: tenantid.SourceSubdomain})
		require.NoError(t, err)
		assert.Equal(t, directory.KindNotFound, outcome.Kind)
		assert.Nil(t, outcome.Tenant)
	})

	t.Run("suspended tenant", func(t *testing.T) {
		t.Parallel()

		outcome, err := dir.Lookup(context.Background(),
			tenantid.Identity{Identifier: "globex", Source: tenantid.SourcePath})
		require.NoError(t, err)
		assert.Equal(t, directory.KindInactive, outcome.Kind)
		assert.Equal(t, directory.ReasonSuspended, outcome.Reason)
		require.NotNil(t, outcome.Tenant)
	})

	t.Run("setup failed tenant", func(t *testing.T) {
		t.Parallel()

		outcome, err := dir.Lookup(context.Background(),
			tenantid.Identity{Identifier: "initech", Source: tenantid.SourceHeader})
		require.NoError(t, err)
		assert.Equal(t, directory.KindInactive, outcome.Kind)
		assert.Equal(t, directory.ReasonSetupFailed, outcome.Reason)
	})

	t.Run("status change is visible on next lookup", func(t *testing.T) {
		t.Parallel()

		store := seedStore()
		fresh := directory.New(store)

		outcome, err := fresh.Lookup(context.Background(),
			tenantid.Identity{Identifier: "acme", Source: tenantid.SourceSubdomain})
		require.NoError(t, err)
		require.Equal(t, directory.KindFound, outcome.Kind)

		store.SetStatus("acme", directory.StatusSuspended)

		outcome, err = fresh.Lookup(context.Background(),
			tenantid.Identity{Identifier: "acme", Source: tenantid.SourceSubdomain})
		require.NoError(t, err)
		assert.Equal(t, directory.KindInactive, outcome.Kind)
		assert.Equal(t, directory.ReasonSuspended, outcome.Reason)
	})
}

type failingStore struct{}

func (failingStore) FindTenantBySlug(context.Context, string) (*directory.Tenant, error) {
	return nil, errors.New("connection reset")
}

func (failingStore) FindTenantByCustomDomain(context.Context, string) (*directory.Tenant, error) {
	return nil, errors.New("connection reset")
}

func TestDirectory_StoreFailure(t *testing.T) {
	t.Parallel()

	dir := directory.New(failingStore{})

	_, err := dir.Lookup(context.Background(),
		tenantid.Identity{Identifier: "acme", Source: tenantid.SourceSubdomain})
	require.ErrorIs(t, err, directory.ErrFailedToFindTenant)
}
