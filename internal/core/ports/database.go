package ports

import (
	"context"

	"go.trai.ch/pacdb/internal/core/domain"
)

// Database is the query contract of a package database.
//
//go:generate mockgen -source=database.go -destination=mocks/mock_database.go -package=mocks
type Database interface {
	// Name returns the database identifier.
	Name() string

	// Path returns the root path of the database.
	Path() string

	// Status classifies the structural integrity of the database on disk.
	Status() (domain.DBStatus, error)

	// Count returns the number of packages in the database.
	Count() int

	// Package returns the package with exactly this name and version.
	Package(name, version string) (*domain.LocalPackage, error)

	// PackageLatest returns the newest package with this name.
	PackageLatest(name string) (*domain.LocalPackage, error)

	// ForEach calls fn with every package, stopping at the first error.
	ForEach(fn func(*domain.LocalPackage) error) error

	// Keys returns the identity of every package, sorted by name then version.
	Keys() []domain.PackageKey

	// Preload parses every package record using up to workers goroutines.
	Preload(ctx context.Context, workers int) error
}
