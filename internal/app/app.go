// Package app implements the application layer for pacdb.
package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/pacdb/internal/core/ports"
	"go.trai.ch/pacdb/internal/handle"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	builder      ports.PackageBuilder
	inventory    ports.InventoryWriter
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	builder ports.PackageBuilder,
	inventory ports.InventoryWriter,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		builder:      builder,
		inventory:    inventory,
		logger:       log,
	}
}

// Options selects the configuration a command runs with.
// Non-empty fields override the values read from the configuration file.
type Options struct {
	ConfigPath   string
	RootPath     string
	DatabasePath string
	// SigLevel holds SigLevel options separated by spaces or commas, e.g. "Required DatabaseOptional".
	SigLevel string
	// Workers bounds the goroutines used to parse package records; <= 0 means unbounded.
	Workers int
}

// logConfigurer is implemented by loggers whose format can be changed at runtime.
type logConfigurer interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// ConfigureLogging switches the logger to debug level and/or JSON output when supported.
func (a *App) ConfigureLogging(verbose, json bool) {
	if lc, ok := a.logger.(logConfigurer); ok {
		lc.SetVerbose(verbose)
		lc.SetJSON(json)
	}
}

// Open loads the configuration and returns a handle for it.
func (a *App) Open(opts Options) (*handle.Handle, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.RootPath != "" {
		cfg.RootPath = opts.RootPath
	}
	if opts.DatabasePath != "" {
		cfg.DatabasePath = opts.DatabasePath
	}
	if opts.SigLevel != "" {
		level, err := domain.ParseSignatureLevel(splitOptions(opts.SigLevel))
		if err != nil {
			return nil, err
		}
		cfg.SigLevel = level
	}

	a.logger.Debug("opening handle", "root", cfg.RootPath, "dbpath", cfg.DatabasePath, "siglevel", cfg.SigLevel)
	return handle.New(*cfg, a.builder, a.logger), nil
}

func splitOptions(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func (a *App) openDatabase(opts Options) (ports.Database, error) {
	h, err := a.Open(opts)
	if err != nil {
		return nil, err
	}
	db, err := h.LocalDatabase()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open local database")
	}
	return db, nil
}

// StatusReport describes the local database.
type StatusReport struct {
	Path   string
	Status domain.DBStatus
	Count  int
}

// Status reports the state of the local database.
func (a *App) Status(_ context.Context, opts Options) (StatusReport, error) {
	db, err := a.openDatabase(opts)
	if err != nil {
		return StatusReport{}, err
	}

	status, err := db.Status()
	if err != nil {
		return StatusReport{}, err
	}

	return StatusReport{
		Path:   db.Path(),
		Status: status,
		Count:  db.Count(),
	}, nil
}

// List returns every installed package, sorted by name then version.
// No package record is parsed.
func (a *App) List(_ context.Context, opts Options) ([]domain.PackageKey, error) {
	db, err := a.openDatabase(opts)
	if err != nil {
		return nil, err
	}
	return db.Keys(), nil
}

// Info returns the full record of a package. With an empty version the newest
// installed version is returned.
func (a *App) Info(_ context.Context, opts Options, name, version string) (*domain.LocalPackage, error) {
	db, err := a.openDatabase(opts)
	if err != nil {
		return nil, err
	}
	if version == "" {
		return db.PackageLatest(name)
	}
	return db.Package(name, version)
}

// Latest returns the newest installed version of a package.
func (a *App) Latest(_ context.Context, opts Options, name string) (domain.PackageKey, error) {
	db, err := a.openDatabase(opts)
	if err != nil {
		return domain.PackageKey{}, err
	}
	pkg, err := db.PackageLatest(name)
	if err != nil {
		return domain.PackageKey{}, err
	}
	return pkg.Key(), nil
}

// Export parses every package record and writes the inventory to out.
// It returns the number of packages written.
func (a *App) Export(ctx context.Context, opts Options, out string) (int, error) {
	db, err := a.openDatabase(opts)
	if err != nil {
		return 0, err
	}

	entries, err := collectInventory(ctx, db, opts.Workers)
	if err != nil {
		return 0, err
	}

	if err := a.inventory.Write(out, entries); err != nil {
		return 0, err
	}

	a.logger.Info("exported package inventory", "path", out, "count", len(entries))
	return len(entries), nil
}

// collectInventory loads every package of db and returns its inventory entries sorted by key.
func collectInventory(ctx context.Context, db ports.Database, workers int) ([]domain.InventoryEntry, error) {
	if err := db.Preload(ctx, workers); err != nil {
		return nil, err
	}

	entries := make([]domain.InventoryEntry, 0, db.Count())
	err := db.ForEach(func(pkg *domain.LocalPackage) error {
		entries = append(entries, domain.InventoryEntry{
			Name:        pkg.Name,
			Version:     pkg.Version,
			PURL:        pkg.PURL(),
			Reason:      pkg.Reason.String(),
			InstallDate: pkg.InstallDate,
			Checksum:    formatChecksum(pkg.Checksum),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(x, y domain.InventoryEntry) int {
		return domain.ComparePackageKeys(
			domain.NewPackageKey(x.Name, x.Version),
			domain.NewPackageKey(y.Name, y.Version),
		)
	})
	return entries, nil
}

func formatChecksum(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
