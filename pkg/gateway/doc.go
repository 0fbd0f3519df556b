// Package gateway is the request boundary of the platform core. It composes
// identity resolution (pkg/tenantid), the tenant directory (pkg/directory),
// the license gate (pkg/license) and the tenant connection cache
// (pkg/connpool) into one pipeline that every tenant-facing request passes
// through before business code runs:
//
//	resolve identity -> look up tenant -> check entitlement -> acquire DB -> handler
//
// A suspended or unknown tenant terminates the pipeline before any license
// query or pool construction happens. All terminal outcomes, including
// handler panics, are translated exactly once into the JSON envelope
//
//	{"success": false, "error": {"code": "...", "message": "...", "details": ...}}
//
// with the status mapping defined by the HTTPError taxonomy in errors.go.
// Internal error detail is attached only in dev mode.
//
// Platform-admin surfaces use WithoutTenant, which never resolves a tenant
// and never opens tenant databases.
package gateway
