// Package localdb implements the database of installed packages.
//
// The database directory holds one subdirectory per installed package, named
// name-pkgver-pkgrel, and a version marker file. Opening a database lists the directory
// once; package records are parsed lazily on first access and memoized. The directory is
// never rescanned, so packages installed or removed after Open are not reflected.
package localdb

import (
	"context"
	"slices"

	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/pacdb/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

var _ ports.Database = (*Database)(nil)

// Database is the local package database.
//
// The slot map is fixed once Open returns, so lookups need no lock; each slot guards its
// own transition from unparsed to parsed. A *Database may be shared between goroutines.
type Database struct {
	path     string
	sigLevel domain.SignatureLevel
	usage    domain.DBUsage

	config  ports.ConfigSource
	builder ports.PackageBuilder
	logger  ports.Logger

	slots map[domain.PackageKey]*slot
	count int
}

// Open creates the local database rooted at the handle's LocalDBPath and populates its
// package cache. Any failure while listing the directory fails Open; a database is never
// returned partially populated. A database root that does not exist yields an empty
// database whose Status is StatusMissing.
func Open(
	config ports.ConfigSource,
	builder ports.PackageBuilder,
	logger ports.Logger,
	sigLevel domain.SignatureLevel,
) (*Database, error) {
	d := &Database{
		path:     config.Config().LocalDBPath(),
		sigLevel: sigLevel,
		usage:    domain.UsageAll,
		config:   config,
		builder:  builder,
		logger:   logger,
		slots:    make(map[domain.PackageKey]*slot),
	}
	if err := d.populate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Name returns the name of the local database.
func (d *Database) Name() string {
	return domain.LocalDBName
}

// Path returns the root directory of the database.
func (d *Database) Path() string {
	return d.path
}

// SigLevel returns the signature level the database was configured with.
func (d *Database) SigLevel() domain.SignatureLevel {
	return d.sigLevel
}

// Usage returns the operations the database is used for.
func (d *Database) Usage() domain.DBUsage {
	return d.usage
}

// Count returns the number of installed packages.
func (d *Database) Count() int {
	return d.count
}

// Package returns the package with exactly this name and version.
// It fails with *domain.InvalidLocalPackageError if no such package is installed.
func (d *Database) Package(name, version string) (*domain.LocalPackage, error) {
	s, ok := d.slots[domain.NewPackageKey(name, version)]
	if !ok {
		return nil, domain.NewInvalidLocalPackageError(name)
	}
	return s.load(d.config, d.builder)
}

// PackageLatest returns the package with this name and the greatest version.
// It scans every installed package. It fails with *domain.InvalidLocalPackageError if no
// version of the package is installed.
func (d *Database) PackageLatest(name string) (*domain.LocalPackage, error) {
	var best *slot
	for key, s := range d.slots {
		if key.Name != name {
			continue
		}
		if best == nil || newer(key, best.key) {
			best = s
		}
	}
	if best == nil {
		return nil, domain.NewInvalidLocalPackageError(name)
	}
	return best.load(d.config, d.builder)
}

// newer orders by version, falling back to the raw string so equal versions such as
// 1.01 and 1.1 pick the same winner on every call.
func newer(a, b domain.PackageKey) bool {
	if c := a.Compare(b); c != 0 {
		return c > 0
	}
	return a.Version > b.Version
}

// ForEach loads every package and passes it to fn, in no particular order.
// It stops at the first error, from loading or from fn, and returns it unchanged.
func (d *Database) ForEach(fn func(*domain.LocalPackage) error) error {
	for _, s := range d.slots {
		pkg, err := s.load(d.config, d.builder)
		if err != nil {
			return err
		}
		if err := fn(pkg); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the identity of every installed package, sorted by name then version.
// It does not load any package record.
func (d *Database) Keys() []domain.PackageKey {
	keys := make([]domain.PackageKey, 0, len(d.slots))
	for key := range d.slots {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, domain.ComparePackageKeys)
	return keys
}

// Preload parses every package record using at most workers goroutines (unbounded when
// workers <= 0). The first failure cancels the remaining loads and is returned.
func (d *Database) Preload(ctx context.Context, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for _, s := range d.slots {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := s.load(d.config, d.builder)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
