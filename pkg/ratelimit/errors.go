package ratelimit

import "errors"

var (
	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid rate limit configuration")

	// ErrStoreUnavailable indicates that the store backend failed.
	ErrStoreUnavailable = errors.New("rate limit store unavailable")

	// ErrUnexpectedReply indicates that the store backend answered with a
	// reply the store cannot interpret.
	ErrUnexpectedReply = errors.New("unexpected rate limit store reply")
)
