// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/pacdb/internal/core/domain"

// PackageBuilder constructs a full package record from its on-disk location.
//
//go:generate mockgen -source=package_builder.go -destination=mocks/mock_package_builder.go -package=mocks
type PackageBuilder interface {
	// Build parses the record stored in path for the package identified by name and version.
	Build(path, name, version string, cfg domain.Config) (*domain.LocalPackage, error)
}
