package main

import "github.com/aka-uba/omnex-core-platform-sub016/pkg/license"

// registerModules declares the compiled-in business modules. Registration
// is explicit: a module absent from this list does not exist as far as the
// license gate is concerned, whatever a package row claims.
func registerModules(r *license.Registry) {
	for _, m := range []license.Manifest{
		{Slug: "crm", Name: "CRM", Version: "1.4.0", Description: "Contacts, leads and deals"},
		{Slug: "accounting", Name: "Accounting", Version: "1.2.1", Description: "Invoicing and ledgers"},
		{Slug: "hr", Name: "HR", Version: "1.1.0", Description: "Employees and leave tracking"},
		{Slug: "projects", Name: "Projects", Version: "1.3.2", Description: "Tasks and timesheets"},
		{Slug: "documents", Name: "Documents", Version: "1.0.5", Description: "File archive and sharing"},
		{Slug: "realestate", Name: "Real Estate", Version: "0.9.0", Description: "Property portfolio management"},
	} {
		r.Register(m)
	}
}

// builtinPackages maps license package ids to module entitlements. Kept in
// code until packaging moves to the billing service.
func builtinPackages() license.PackageSource {
	return license.StaticPackages(
		license.Package{
			ID:      "starter",
			Name:    "Starter",
			Modules: []string{"crm", "documents"},
		},
		license.Package{
			ID:      "business",
			Name:    "Business",
			Modules: []string{"crm", "documents", "accounting", "projects"},
		},
		license.Package{
			ID:      "enterprise",
			Name:    "Enterprise",
			Modules: []string{"crm", "documents", "accounting", "projects", "hr", "realestate"},
		},
	)
}
