package permission

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSource loads permission layers from the core store. The three layers
// live in one table keyed by scope: tenant rows carry only the tenant id,
// role rows carry the role the user belongs to, user rows carry the user id.
type PGSource struct {
	pool *pgxpool.Pool
}

// NewPGSource wraps a core store connection pool.
func NewPGSource(pool *pgxpool.Pool) *PGSource {
	if pool == nil {
		panic("permission: pgxpool is required")
	}
	return &PGSource{pool: pool}
}

const loadRuleSetQuery = `
	SELECT scope, permission_key, allowed, COALESCE(settings, 'null'::jsonb)
	FROM permission_rules
	WHERE (scope = 'tenant' AND tenant_id = $1)
	   OR (scope = 'role' AND tenant_id = $1 AND role_name = (
			SELECT role_name FROM tenant_users WHERE tenant_id = $1 AND user_id = $2))
	   OR (scope = 'user' AND tenant_id = $1 AND user_id = $2)`

// LoadRuleSet implements RuleSource.
func (s *PGSource) LoadRuleSet(ctx context.Context, tenantID, userID uuid.UUID) (RuleSet, error) {
	rows, err := s.pool.Query(ctx, loadRuleSetQuery, tenantID, userID)
	if err != nil {
		return RuleSet{}, errors.Join(ErrFailedToLoadRules, err)
	}
	defer rows.Close()

	rs := RuleSet{
		Tenant: make(Layer),
		Role:   make(Layer),
		User:   make(Layer),
	}

	for rows.Next() {
		var (
			scope    string
			key      string
			allowed  bool
			settings []byte
		)
		if err := rows.Scan(&scope, &key, &allowed, &settings); err != nil {
			return RuleSet{}, errors.Join(ErrFailedToLoadRules, err)
		}

		value := Value{Allowed: allowed}
		if len(settings) > 0 && string(settings) != "null" {
			if err := json.Unmarshal(settings, &value.Settings); err != nil {
				return RuleSet{}, errors.Join(ErrFailedToLoadRules, err)
			}
		}

		switch scope {
		case "tenant":
			rs.Tenant[key] = value
		case "role":
			rs.Role[key] = value
		case "user":
			rs.User[key] = value
		}
	}

	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return RuleSet{}, errors.Join(ErrFailedToLoadRules, err)
	}

	return rs, nil
}
