package connpool

import "errors"

var (
	// ErrConnectionFailure is returned when a tenant database cannot be
	// reached within the health-check timeout.
	ErrConnectionFailure = errors.New("tenant database connection failure")

	// ErrEmptyDescriptor is returned for a blank connection descriptor,
	// which would otherwise alias every misconfigured tenant to one pool.
	ErrEmptyDescriptor = errors.New("empty connection descriptor")

	// ErrCacheClosed is returned when acquiring from a closed cache.
	ErrCacheClosed = errors.New("connection cache is closed")
)
