package directory

import "errors"

var (
	// ErrTenantNotFound is returned by stores when no tenant matches.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrFailedToFindTenant wraps store failures during a lookup.
	ErrFailedToFindTenant = errors.New("failed to find tenant")
)
