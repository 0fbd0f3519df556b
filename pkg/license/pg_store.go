package license

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aka-uba/omnex-core-platform-sub016/pkg/pg"
)

// PGStore reads licenses from the shared core store.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore wraps a core store connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	if pool == nil {
		panic("license: pgxpool is required")
	}
	return &PGStore{pool: pool}
}

const findActiveLicenseQuery = `
	SELECT id, tenant_id, package_id, status, starts_at, ends_at, payment_status, grace_until
	FROM licenses
	WHERE tenant_id = $1
	ORDER BY starts_at DESC
	LIMIT 1`

// FindActiveLicense implements Store. The newest license by start date is
// the tenant's current one; superseded licenses stay behind it for audit.
func (s *PGStore) FindActiveLicense(ctx context.Context, tenantID uuid.UUID) (*License, error) {
	var (
		lic        License
		graceUntil sql.NullTime
	)

	row := s.pool.QueryRow(ctx, findActiveLicenseQuery, tenantID)
	err := row.Scan(
		&lic.ID,
		&lic.TenantID,
		&lic.PackageID,
		&lic.Status,
		&lic.StartsAt,
		&lic.EndsAt,
		&lic.PaymentStatus,
		&graceUntil,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrLicenseNotFound
		}
		return nil, errors.Join(ErrFailedToFindLicense, err)
	}

	if graceUntil.Valid {
		lic.GraceUntil = graceUntil.Time
	} else {
		lic.GraceUntil = time.Time{}
	}

	return &lic, nil
}
