package localdb

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/zerr"
)

// populate fills the package cache with one unparsed slot per package directory.
// It costs a single directory read plus one metadata query per entry.
func (d *Database) populate() error {
	d.logger.Debug("searching for local packages", "path", d.path)

	entries, err := os.ReadDir(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d.logger.Debug("local database directory does not exist", "path", d.path)
			return nil
		}
		if errors.Is(err, syscall.ENOTDIR) {
			d.logger.Debug("local database root is not a directory", "path", d.path)
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrLocalDBReadFailed.Error()), "path", d.path)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(d.path, entry.Name())

		info, err := entry.Info()
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrLocalDBReadFailed.Error()), "path", entryPath)
		}

		if !info.IsDir() {
			if entry.Name() != VersionFile {
				d.logger.Warn("unexpected file in local database directory", "path", entryPath)
			}
			continue
		}

		name, version, ok := domain.SplitPackageDirname(entry.Name())
		if !ok {
			return domain.NewInvalidLocalPackageError(entry.Name())
		}
		d.logger.Debug("found local package", "name", name, "version", version)

		key := domain.NewPackageKey(name, version)
		if _, exists := d.slots[key]; exists {
			panic(zerr.With(domain.ErrDuplicatePackage, "package", key.String()))
		}
		d.slots[key] = newSlot(entryPath, key)
	}

	d.count = len(d.slots)
	return nil
}
