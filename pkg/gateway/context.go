package gateway

import (
	"context"
	"log/slog"

	"github.com/aka-uba/omnex-core-platform-sub016/pkg/logger"
)

type contextKey struct{}

func withScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// ScopeFromContext returns the resolved request scope, if any. Handlers
// invoked through WithTenant or behind the TenantContext middleware always
// find one.
func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(contextKey{}).(*Scope)
	return s, ok
}

// TenantSlugExtractor returns a logger extractor that annotates every log
// record made within a resolved request with the tenant slug.
func TenantSlugExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if s, ok := ScopeFromContext(ctx); ok && s.Tenant != nil {
			return slog.String("tenant", s.Tenant.Slug), true
		}
		return slog.Attr{}, false
	}
}
