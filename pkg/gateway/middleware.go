package gateway

import "net/http"

// TenantContext is router middleware that resolves the request's tenant and
// stores the scope in context without gating on any module. Use it for route
// groups whose handlers read the scope via ScopeFromContext; module-gated
// endpoints should prefer WithTenant.
func (o *Orchestrator) TenantContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, herr, cause := o.resolveScope(r, "")
		if herr != nil {
			o.fail(w, r, *herr, cause)
			return
		}
		next.ServeHTTP(w, r.WithContext(withScope(r.Context(), scope)))
	})
}

// RequireScope guards routes that expect TenantContext to have run. A
// missing scope means the route tree is miswired, so the response is a
// generic internal error rather than anything tenant-specific.
func RequireScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ScopeFromContext(r.Context()); !ok {
			RespondError(w, ErrInternal)
			return
		}
		next.ServeHTTP(w, r)
	})
}
