package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/aka-uba/omnex-core-platform-sub016/pkg/clientip"
)

// KeyFunc extracts the caller identifier from a request. Returning an
// empty string skips rate limiting for that request.
type KeyFunc func(r *http.Request) string

// ClientIPKey identifies callers by client IP, proxy headers included.
func ClientIPKey() KeyFunc {
	return func(r *http.Request) string {
		return clientip.GetIP(r)
	}
}

// UserKey identifies callers by the user id header, falling back to the
// client IP for unauthenticated requests.
func UserKey(headerName string) KeyFunc {
	if headerName == "" {
		headerName = "X-User-ID"
	}
	return func(r *http.Request) string {
		if id := r.Header.Get(headerName); id != "" {
			return "user:" + id
		}
		return "ip:" + clientip.GetIP(r)
	}
}

// Middleware enforces a limiter at the request entry point. Denied
// requests get a 429 with Retry-After; store failures fail open so a
// broken counter backend cannot take the platform down.
func Middleware(limiter *Limiter, keyFunc KeyFunc, onDenied http.HandlerFunc) func(http.Handler) http.Handler {
	if keyFunc == nil {
		panic("ratelimit.Middleware: keyFunc is required")
	}
	if onDenied == nil {
		onDenied = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Check(r.Context(), key)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retryAfter := int(result.RetryAfter().Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				onDenied(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
