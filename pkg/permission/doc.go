// Package permission resolves layered permission rules into effective
// decisions.
//
// Three independent layers key the same permission namespace: tenant
// defaults, role defaults, and per-user overrides. Resolution applies the
// layers in the fixed order tenant, then role, then user; a later layer's
// explicit entry replaces the earlier value for that key only, and absence
// at a layer falls through to the previous one. The merge is per-key, never
// wholesale, so a user override for one key leaves every other key's
// inherited value untouched.
//
// The resolver owns no persistent state. Rule data arrives through a
// RuleSource; the merge itself is a pure function with no suspension
// points, so a decision can never observe a half-updated rule set.
//
// A permission grant never overrides tenant or company isolation: when a
// resource reference accompanies a check, the resource's scope must match
// the caller's resolved scope before any grant is honored.
package permission
