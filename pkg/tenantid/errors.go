package tenantid

import "errors"

var (
	// ErrInvalidIdentifier is returned when an extracted identifier is not
	// a valid tenant slug or hostname.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")
)
