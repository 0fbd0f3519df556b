package license

import "errors"

var (
	// ErrLicenseNotFound is returned by stores when a tenant has no license.
	ErrLicenseNotFound = errors.New("license not found")

	// ErrPackageNotFound is returned when a license references a package
	// that is not present in the loaded package set.
	ErrPackageNotFound = errors.New("license package not found")

	// ErrFailedToLoadPackages is returned when the package source fails.
	ErrFailedToLoadPackages = errors.New("failed to load packages")

	// ErrFailedToFindLicense wraps store failures while reading a license.
	ErrFailedToFindLicense = errors.New("failed to find license")

	// ErrModuleNotRegistered is returned by the registry for unknown slugs.
	ErrModuleNotRegistered = errors.New("module not registered")
)
