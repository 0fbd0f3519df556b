// Package tenantid extracts tenant identity from inbound request metadata.
//
// Resolution is a pure function over the request host, path, and headers:
// it performs no I/O and is safe to run in restricted pre-processing stages
// that have no database access. The resolver reports where the identifier
// came from (trusted header, subdomain, path segment, or bare custom
// hostname) so the tenant directory can pick the matching lookup field.
//
// Platform-admin classification is independent of tenant resolution: a
// request may target the admin surface whether or not a tenant identifier
// is present.
//
// # Usage
//
//	resolver := tenantid.NewResolver(tenantid.Config{BaseDomain: "omnex.app"})
//
//	id, err := resolver.ResolveRequest(r)
//	if err != nil {
//		// malformed identifier
//	}
//	if id == nil {
//		// no tenant: platform-admin or public request
//	}
package tenantid
