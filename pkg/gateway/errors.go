package gateway

import (
	"net/http"
	"strings"
)

// HTTPError represents a terminal request error with an HTTP status code and
// a stable machine-readable key. The key doubles as a translation key for
// client-side remediation messaging.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // stable error key (e.g. "tenant_not_found")
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

// Message returns a human-readable default message derived from the key.
func (e HTTPError) Message() string {
	if e.Key == "" {
		return http.StatusText(e.Code)
	}
	return strings.ReplaceAll(e.Key, "_", " ")
}

// Request resolution and gating taxonomy. Resolution-stage errors are
// terminal: returned immediately, never retried, and never allowed to reach
// business-handler code.
var (
	ErrTenantNotFound    = HTTPError{Code: http.StatusNotFound, Key: "tenant_not_found"}
	ErrTenantSuspended   = HTTPError{Code: http.StatusForbidden, Key: "tenant_suspended"}
	ErrTenantSetupFailed = HTTPError{Code: http.StatusForbidden, Key: "tenant_setup_failed"}
	ErrLicenseRequired   = HTTPError{Code: http.StatusPaymentRequired, Key: "license_required"}
	ErrLicenseExpired    = HTTPError{Code: http.StatusPaymentRequired, Key: "license_expired"}
	ErrModuleNotLicensed = HTTPError{Code: http.StatusForbidden, Key: "module_not_licensed"}
	ErrModuleUnknown     = HTTPError{Code: http.StatusNotFound, Key: "module_unknown"}
	ErrPermissionDenied  = HTTPError{Code: http.StatusForbidden, Key: "permission_denied"}
	ErrValidation        = HTTPError{Code: http.StatusBadRequest, Key: "validation_error"}
	ErrRateLimited       = HTTPError{Code: http.StatusTooManyRequests, Key: "rate_limited"}
	ErrConnectionFailure = HTTPError{Code: http.StatusInternalServerError, Key: "connection_failure"}
	ErrNotFound          = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrInternal          = HTTPError{Code: http.StatusInternalServerError, Key: "internal_error"}
)

// NewHTTPError creates a custom HTTP error with the given status code and key.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}
