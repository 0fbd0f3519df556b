package permission

import "errors"

var (
	// ErrFailedToLoadRules wraps rule source failures.
	ErrFailedToLoadRules = errors.New("failed to load permission rules")
)
