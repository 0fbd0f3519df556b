// Package directory looks up tenant records in the shared core store.
//
// The directory maps a resolved tenant identity to a tenant record and a
// typed lookup outcome: found, not found, or inactive with the reason. Not
// finding a tenant is an expected outcome of serving arbitrary hostnames,
// never an error.
//
// Lookups are deliberately uncached. Tenant status must be read fresh on
// every request so a suspension takes effect in near real time; the cost is
// one indexed read against the core store per request.
package directory
