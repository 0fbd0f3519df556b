// Package license gates module access on a tenant's subscription entitlements.
//
// A License grants a tenant access to a Package, a named bundle of modules,
// for a validity window. The Gate answers one question for the request
// pipeline: may this tenant use this module right now. Its decisions
// distinguish a missing license from an expired or unpaid one and from a
// valid license that simply does not cover the requested module, so callers
// can render different remediation messaging for each case.
//
// Modules are declared through a static Registry populated by explicit
// Register calls at startup. There is no runtime module discovery: a module
// that is not registered does not exist as far as the gate is concerned.
//
// Licenses are read through the Store interface; writes happen in billing
// and administrative flows outside this package.
package license
