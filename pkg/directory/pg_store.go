package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aka-uba/omnex-core-platform-sub016/pkg/pg"
)

// PGStore reads tenants from the shared core store.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore wraps a core store connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	if pool == nil {
		panic("directory: pgxpool is required")
	}
	return &PGStore{pool: pool}
}

const tenantColumns = `
	id, slug, name, COALESCE(subdomain, ''), COALESCE(custom_domain, ''),
	status, database_url, COALESCE(previous_database_urls, '{}'), agency_id, created_at`

// FindTenantBySlug implements Store.
func (s *PGStore) FindTenantBySlug(ctx context.Context, slug string) (*Tenant, error) {
	return s.findTenant(ctx, `SELECT`+tenantColumns+` FROM tenants WHERE slug = $1`, slug)
}

// FindTenantByCustomDomain implements Store.
func (s *PGStore) FindTenantByCustomDomain(ctx context.Context, host string) (*Tenant, error) {
	return s.findTenant(ctx, `SELECT`+tenantColumns+` FROM tenants WHERE custom_domain = $1`, host)
}

func (s *PGStore) findTenant(ctx context.Context, query, arg string) (*Tenant, error) {
	var t Tenant

	row := s.pool.QueryRow(ctx, query, arg)
	err := row.Scan(
		&t.ID,
		&t.Slug,
		&t.Name,
		&t.Subdomain,
		&t.CustomDomain,
		&t.Status,
		&t.Database,
		&t.PreviousDatabases,
		&t.AgencyID,
		&t.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(ErrFailedToFindTenant, err)
	}

	return &t, nil
}
