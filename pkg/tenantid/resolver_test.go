package tenantid_test

import (
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aka-uba/omnex-core-platform-sub016/pkg/tenantid"
)

func newTestResolver() *tenantid.Resolver {
	return tenantid.NewResolver(tenantid.Config{
		BaseDomain:         "platform.example",
		ReservedSubdomains: []string{"admin", "www"},
	})
}

func TestResolver_Subdomain(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()

	t.Run("extracts slug from subdomain", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("acme.platform.example", "/", nil)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, "acme", id.Identifier)
		assert.Equal(t, tenantid.SourceSubdomain, id.Source)
	})

	t.Run("strips port from host", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("acme.platform.example:8080", "/", nil)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, "acme", id.Identifier)
	})

	t.Run("lowercases host", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("ACME.Platform.Example", "/", nil)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, "acme", id.Identifier)
	})

	t.Run("reserved subdomain is not a tenant", func(t *testing.T) {
		t.Parallel()

		for _, host := range []string{"admin.platform.example", "www.platform.example"} {
			id, err := resolver.Resolve(host, "/", nil)
			require.NoError(t, err)
			assert.Nil(t, id, "host %s must not resolve to a tenant", host)
		}
	})

	t.Run("bare base domain is not a tenant", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("platform.example", "/", nil)
		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("nested subdomain is not a tenant slug", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("a.b.platform.example", "/", nil)
		require.NoError(t, err)
		assert.Nil(t, id)
	})
}

func TestResolver_Path(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()

	t.Run("falls back to tenant path prefix", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("localhost", "/tenant/acme/dashboard", nil)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, "acme", id.Identifier)
		assert.Equal(t, tenantid.SourcePath, id.Source)
	})

	t.Run("path slug without trailing segments", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("localhost", "/tenant/acme", nil)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, "acme", id.Identifier)
	})

	t.Run("bare prefix yields no tenant", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("localhost", "/tenant/", nil)
		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("invalid path slug is rejected", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("localhost", "/tenant/-bad_slug!/x", nil)
		require.ErrorIs(t, err, tenantid.ErrInvalidIdentifier)
		assert.Nil(t, id)
	})

	t.Run("subdomain takes precedence over path", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("acme.platform.example", "/tenant/other/x", nil)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, "acme", id.Identifier)
		assert.Equal(t, tenantid.SourceSubdomain, id.Source)
	})
}

func TestResolver_CustomDomain(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()

	t.Run("bare custom hostname resolves to custom-domain source", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("crm.acmecorp.com", "/", nil)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, "crm.acmecorp.com", id.Identifier)
		assert.Equal(t, tenantid.SourceCustomDomain, id.Source)
	})

	t.Run("localhost is never a custom domain", func(t *testing.T) {
		t.Parallel()

		for _, host := range []string{"localhost", "localhost:3000"} {
			id, err := resolver.Resolve(host, "/", nil)
			require.NoError(t, err)
			assert.Nil(t, id)
		}
	})

	t.Run("ip literal is never a custom domain", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("127.0.0.1:8080", "/", nil)
		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("hostname without dots is not a custom domain", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("intranet", "/", nil)
		require.NoError(t, err)
		assert.Nil(t, id)
	})
}

func TestResolver_HeaderOverride(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()

	header := func(values map[string]string) func(string) string {
		return func(name string) string { return values[name] }
	}

	t.Run("override header wins over subdomain", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("acme.platform.example", "/",
			header(map[string]string{"X-Omnex-Tenant": "globex"}))
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, "globex", id.Identifier)
		assert.Equal(t, tenantid.SourceHeader, id.Source)
	})

	t.Run("malformed override value is rejected", func(t *testing.T) {
		t.Parallel()

		id, err := resolver.Resolve("acme.platform.example", "/",
			header(map[string]string{"X-Omnex-Tenant": "../etc/passwd"}))
		require.ErrorIs(t, err, tenantid.ErrInvalidIdentifier)
		assert.Nil(t, id)
	})
}

func TestResolver_IsPlatformAdmin(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()

	t.Run("admin subdomain", func(t *testing.T) {
		t.Parallel()

		assert.True(t, resolver.IsPlatformAdmin("admin.platform.example", "/"))
	})

	t.Run("admin path prefix", func(t *testing.T) {
		t.Parallel()

		assert.True(t, resolver.IsPlatformAdmin("localhost", "/admin"))
		assert.True(t, resolver.IsPlatformAdmin("localhost", "/admin/tenants"))
	})

	t.Run("prefix match is segment-aware", func(t *testing.T) {
		t.Parallel()

		assert.False(t, resolver.IsPlatformAdmin("localhost", "/administrator"))
	})

	t.Run("tenant requests are not admin", func(t *testing.T) {
		t.Parallel()

		assert.False(t, resolver.IsPlatformAdmin("acme.platform.example", "/dashboard"))
	})
}

func TestResolver_ResolveRequest(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()

	req := httptest.NewRequest("GET", "http://acme.platform.example/dashboard", nil)
	req.Host = "acme.platform.example"

	id, err := resolver.ResolveRequest(req)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "acme", id.Identifier)
}

func TestResolver_Pure(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()

	first, err := resolver.Resolve("acme.platform.example", "/tenant/x/y", nil)
	require.NoError(t, err)
	second, err := resolver.Resolve("acme.platform.example", "/tenant/x/y", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolver_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()

	const numGoroutines = 50
	const numOperations = 200

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()

			for range numOperations {
				id, err := resolver.Resolve("acme.platform.example", "/", nil)
				assert.NoError(t, err)
				if assert.NotNil(t, id) {
					assert.Equal(t, "acme", id.Identifier)
				}
			}
		}()
	}

	wg.Wait()
}
