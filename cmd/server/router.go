package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aka-uba/omnex-core-platform-sub016/pkg/gateway"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/license"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/permission"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/ratelimit"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/requestid"
)

type routerDeps struct {
	orch           *gateway.Orchestrator
	perms          *permission.Resolver
	registry       *license.Registry
	defaultLimiter *ratelimit.Limiter
	authLimiter    *ratelimit.Limiter
	coreHealth     func(context.Context) error
	redisHealth    func(context.Context) error
	internalSecret string
	overrideHeader string
}

// overrideHeaderGuard strips the tenant override header from requests that
// do not present the internal shared secret, so only trusted internal
// callers can short-circuit host-based resolution. With no secret
// configured the header is stripped unconditionally.
func overrideHeaderGuard(overrideHeader, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" || r.Header.Get("X-Omnex-Internal-Secret") != secret {
				r.Header.Del(overrideHeader)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// rateLimited renders the 429 in the standard envelope instead of the
// middleware's plain-text default.
func rateLimited(w http.ResponseWriter, r *http.Request) {
	gateway.RespondError(w, gateway.ErrRateLimited)
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(overrideHeaderGuard(deps.overrideHeader, deps.internalSecret))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := deps.coreHealth(req.Context()); err != nil {
			gateway.RespondError(w, gateway.NewHTTPError(http.StatusServiceUnavailable, "core_store_unavailable"))
			return
		}
		if err := deps.redisHealth(req.Context()); err != nil {
			gateway.RespondError(w, gateway.NewHTTPError(http.StatusServiceUnavailable, "redis_unavailable"))
			return
		}
		gateway.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Platform-admin surface. Never resolves a tenant, never opens tenant
	// databases.
	r.Route("/admin", func(r chi.Router) {
		r.Get("/modules", deps.orch.WithoutTenant(func(w http.ResponseWriter, req *http.Request) {
			gateway.Respond(w, http.StatusOK, deps.registry.ListInstalledModules())
		}))
	})

	// Session bootstrap sits behind the strict limiter; credential checks
	// live in the auth service upstream.
	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Middleware(deps.authLimiter, ratelimit.ClientIPKey(), rateLimited))

		r.Post("/auth/session", deps.orch.WithTenant("", func(w http.ResponseWriter, req *http.Request, scope *gateway.Scope) {
			gateway.Respond(w, http.StatusOK, map[string]any{
				"tenant_id": scope.Tenant.ID,
				"slug":      scope.Tenant.Slug,
				"name":      scope.Tenant.Name,
			})
		}))
	})

	// Tenant API.
	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Middleware(deps.defaultLimiter, ratelimit.UserKey(""), rateLimited))

		r.Get("/api/tenant", deps.orch.WithTenant("", func(w http.ResponseWriter, req *http.Request, scope *gateway.Scope) {
			gateway.Respond(w, http.StatusOK, scope.Tenant)
		}))

		r.Get("/api/permissions", deps.orch.WithTenant("", permissionsHandler(deps.perms)))

		r.Get("/api/crm/contacts", deps.orch.WithTenant("crm", listContacts))
	})

	return r
}

// permissionsHandler returns the caller's effective permission map. The
// user id comes from the auth proxy header; requests without one are
// rejected before any rule loading.
func permissionsHandler(perms *permission.Resolver) gateway.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request, scope *gateway.Scope) {
		userID, err := uuid.Parse(req.Header.Get("X-User-ID"))
		if err != nil {
			gateway.RespondError(w, gateway.ErrValidation)
			return
		}

		merged, err := perms.UserPermissions(req.Context(), permission.Caller{
			UserID:   userID,
			TenantID: scope.Tenant.ID,
		})
		if err != nil {
			gateway.RespondError(w, err)
			return
		}
		gateway.Respond(w, http.StatusOK, merged)
	}
}

type contact struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// listContacts is the reference module endpoint: it runs entirely on the
// tenant's own database, reached through the scope's pooled connection.
func listContacts(w http.ResponseWriter, req *http.Request, scope *gateway.Scope) {
	rows, err := scope.DB.Query(req.Context(),
		`SELECT id, name FROM contacts ORDER BY created_at DESC LIMIT 100`)
	if err != nil {
		gateway.RespondError(w, err)
		return
	}
	defer rows.Close()

	contacts := make([]contact, 0)
	for rows.Next() {
		var c contact
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			gateway.RespondError(w, err)
			return
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		gateway.RespondError(w, err)
		return
	}

	gateway.Respond(w, http.StatusOK, contacts)
}
