package gateway

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aka-uba/omnex-core-platform-sub016/pkg/connpool"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/directory"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/license"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/logger"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/tenantid"
)

// Scope is the per-request tenant context handed to business handlers:
// the resolved tenant record and an open pool on its current database.
type Scope struct {
	Tenant *directory.Tenant
	DB     *pgxpool.Pool
}

// HandlerFunc is a business handler executing within a resolved scope.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, scope *Scope)

// Orchestrator composes identity resolution, the tenant directory, the
// license gate and the connection cache into a single per-request pipeline:
// resolve, look up, gate, acquire, invoke. Every failure along the way is
// translated exactly once into the response envelope at this boundary.
type Orchestrator struct {
	resolver *tenantid.Resolver
	dir      *directory.Directory
	gate     *license.Gate
	pools    *connpool.Cache
	log      *slog.Logger
	devMode  bool
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for boundary diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// WithDevMode enables internal error detail in error envelopes. Never
// enable in production.
func WithDevMode(on bool) Option {
	return func(o *Orchestrator) { o.devMode = on }
}

// New creates an orchestrator. All four collaborators are required; a nil
// dependency is a programming error and panics at startup.
func New(resolver *tenantid.Resolver, dir *directory.Directory, gate *license.Gate, pools *connpool.Cache, opts ...Option) *Orchestrator {
	if resolver == nil {
		panic("gateway: resolver is required")
	}
	if dir == nil {
		panic("gateway: directory is required")
	}
	if gate == nil {
		panic("gateway: license gate is required")
	}
	if pools == nil {
		panic("gateway: connection cache is required")
	}

	o := &Orchestrator{
		resolver: resolver,
		dir:      dir,
		gate:     gate,
		pools:    pools,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTenant wraps fn in the full resolution pipeline for the given module.
// An empty moduleKey skips the license gate, for surfaces available to every
// active tenant (login, account settings).
//
// Ordering is fixed: a suspended tenant short-circuits before the license
// gate runs and before any database pool is constructed.
func (o *Orchestrator) WithTenant(moduleKey string, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var scope *Scope
		defer func() {
			if rec := recover(); rec != nil {
				o.handlePanic(w, r, rec, scope)
			}
		}()

		var (
			herr  *HTTPError
			cause error
		)
		scope, herr, cause = o.resolveScope(r, moduleKey)
		if herr != nil {
			o.fail(w, r, *herr, cause)
			return
		}

		fn(w, r.WithContext(withScope(r.Context(), scope)), scope)
	}
}

// WithoutTenant wraps a platform-admin handler. It never resolves a tenant
// and never touches tenant databases; requests outside the admin surface get
// a generic not-found so the admin host is not advertised.
func (o *Orchestrator) WithoutTenant(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				o.handlePanic(w, r, rec, nil)
			}
		}()

		if !o.resolver.IsPlatformAdmin(r.Host, r.URL.Path) {
			o.fail(w, r, ErrNotFound, nil)
			return
		}
		fn(w, r)
	}
}

// resolveScope runs resolve, lookup, gate and acquire. It returns the scope,
// or the terminal HTTP error plus the underlying cause for logging.
func (o *Orchestrator) resolveScope(r *http.Request, moduleKey string) (*Scope, *HTTPError, error) {
	ctx := r.Context()

	identity, err := o.resolver.ResolveRequest(r)
	if err != nil {
		return nil, &ErrValidation, err
	}
	if identity == nil {
		return nil, &ErrTenantNotFound, nil
	}

	outcome, err := o.dir.Lookup(ctx, *identity)
	if err != nil {
		return nil, &ErrInternal, err
	}
	switch outcome.Kind {
	case directory.KindNotFound:
		return nil, &ErrTenantNotFound, nil
	case directory.KindInactive:
		if outcome.Reason == directory.ReasonSetupFailed {
			return nil, &ErrTenantSetupFailed, nil
		}
		return nil, &ErrTenantSuspended, nil
	}
	tenant := outcome.Tenant

	if moduleKey != "" {
		decision, err := o.gate.CheckModule(ctx, tenant.ID, moduleKey)
		if err != nil {
			return nil, &ErrInternal, err
		}
		if herr := decisionError(decision); herr != nil {
			return nil, herr, nil
		}
	}

	// The cache retries a failed construction once internally and never
	// publishes a broken pool, so a failure here is terminal for this
	// request. Purging from here would race concurrent holders of a
	// healthy shared pool.
	pool, err := o.pools.Acquire(ctx, tenant.Database)
	if err != nil {
		return nil, &ErrConnectionFailure, err
	}

	return &Scope{Tenant: tenant, DB: pool}, nil, nil
}

func decisionError(d license.Decision) *HTTPError {
	switch d {
	case license.DecisionAllowed:
		return nil
	case license.DecisionLicenseRequired:
		return &ErrLicenseRequired
	case license.DecisionLicenseExpired:
		return &ErrLicenseExpired
	case license.DecisionModuleNotLicensed:
		return &ErrModuleNotLicensed
	case license.DecisionModuleUnknown:
		return &ErrModuleUnknown
	default:
		return &ErrInternal
	}
}

// fail logs the underlying cause, if any, and renders the envelope. Internal
// detail reaches the client only in dev mode.
func (o *Orchestrator) fail(w http.ResponseWriter, r *http.Request, herr HTTPError, cause error) {
	if cause != nil {
		o.log.ErrorContext(r.Context(), "request terminated",
			slog.String("key", herr.Key),
			slog.Int("status", herr.Code),
			logger.Error(cause),
		)
	}

	var details any
	if o.devMode && cause != nil {
		details = cause.Error()
	}
	respondError(w, herr, details)
}

// handlePanic logs a recovered handler panic with the resolved tenant for
// traceability and renders a generic internal error.
func (o *Orchestrator) handlePanic(w http.ResponseWriter, r *http.Request, rec any, scope *Scope) {
	attrs := []any{slog.Any("panic", rec)}
	if scope != nil && scope.Tenant != nil {
		attrs = append(attrs, slog.String("tenant", scope.Tenant.Slug))
	}
	o.log.ErrorContext(r.Context(), "handler panic", attrs...)

	var details any
	if o.devMode {
		details = rec
	}
	respondError(w, ErrInternal, details)
}
