package directory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a tenant.
type Status string

const (
	StatusActive      Status = "active"
	StatusSuspended   Status = "suspended"
	StatusSetupFailed Status = "setup_failed"
)

// Tenant is an isolated customer account whose data lives in its own
// database. Created once at provisioning; only Status and Database are
// mutated afterward, by administrative operations.
type Tenant struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Subdomain    string    `json:"subdomain,omitempty"`
	CustomDomain string    `json:"custom_domain,omitempty"`
	Status       Status    `json:"status"`
	// Database is the connection descriptor for the tenant's current
	// database. PreviousDatabases keeps prior descriptors for migration
	// rollback; request handling must never use them.
	Database          string    `json:"database"`
	PreviousDatabases []string  `json:"previous_databases,omitempty"`
	AgencyID          uuid.UUID `json:"agency_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// Active reports whether the tenant may serve requests.
func (t *Tenant) Active() bool { return t.Status == StatusActive }

// Store reads tenant records from the core store.
type Store interface {
	// FindTenantBySlug returns the tenant with the given slug.
	// Returns ErrTenantNotFound when no tenant matches.
	FindTenantBySlug(ctx context.Context, slug string) (*Tenant, error)

	// FindTenantByCustomDomain returns the tenant registered for the given
	// hostname. Returns ErrTenantNotFound when no tenant matches.
	FindTenantByCustomDomain(ctx context.Context, host string) (*Tenant, error)
}
