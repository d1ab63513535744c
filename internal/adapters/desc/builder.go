// Package desc builds package records from the desc and files entries of a local database.
package desc

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/pacdb/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DescFile holds the package metadata.
	DescFile = "desc"
	// FilesFile lists the files owned by the package.
	FilesFile = "files"
)

var _ ports.PackageBuilder = (*Builder)(nil)

// Builder parses package records and fingerprints them with a Hasher.
type Builder struct {
	hasher ports.Hasher
}

// NewBuilder creates a new Builder.
func NewBuilder(hasher ports.Hasher) *Builder {
	return &Builder{hasher: hasher}
}

// Build reads the record stored in path. The record's %NAME% and %VERSION% must match
// name and version.
func (b *Builder) Build(path, name, version string, cfg domain.Config) (*domain.LocalPackage, error) {
	descRec, err := readRecord(filepath.Join(path, DescFile))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPackageParseFailed.Error()), "path", path)
	}

	if got := descRec.first("NAME"); got != name {
		return nil, mismatch(path, "name", name, got)
	}
	if got := descRec.first("VERSION"); got != version {
		return nil, mismatch(path, "version", version, got)
	}

	pkg := &domain.LocalPackage{
		Name:        name,
		Version:     version,
		Base:        descRec.first("BASE"),
		Description: descRec.first("DESC"),
		URL:         descRec.first("URL"),
		Arch:        descRec.first("ARCH"),
		Packager:    descRec.first("PACKAGER"),
		Licenses:    descRec["LICENSE"],
		Groups:      descRec["GROUPS"],
		Depends:     descRec["DEPENDS"],
		OptDepends:  descRec["OPTDEPENDS"],
		Conflicts:   descRec["CONFLICTS"],
		Provides:    descRec["PROVIDES"],
		Replaces:    descRec["REPLACES"],
		Path:        path,
		SigLevel:    cfg.SigLevel,
	}

	if pkg.BuildDate, err = parseTimestamp(descRec.first("BUILDDATE")); err != nil {
		return nil, invalidField(path, "BUILDDATE", err)
	}
	if pkg.InstallDate, err = parseTimestamp(descRec.first("INSTALLDATE")); err != nil {
		return nil, invalidField(path, "INSTALLDATE", err)
	}
	if pkg.Size, err = parseInt(descRec.first("SIZE")); err != nil {
		return nil, invalidField(path, "SIZE", err)
	}

	reason, err := parseInt(descRec.first("REASON"))
	if err != nil {
		return nil, invalidField(path, "REASON", err)
	}
	if reason == int64(domain.ReasonDependency) {
		pkg.Reason = domain.ReasonDependency
	}

	for _, v := range descRec["VALIDATION"] {
		pkg.Validation = append(pkg.Validation, domain.ValidationMethod(v))
	}

	filesRec, err := readRecord(filepath.Join(path, FilesFile))
	switch {
	case err == nil:
		pkg.Files = filesRec["FILES"]
	case errors.Is(err, iofs.ErrNotExist):
		// Packages installed without a file list.
	default:
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPackageParseFailed.Error()), "path", path)
	}

	if pkg.Checksum, err = b.hasher.ComputeRecordHash(path, []string{DescFile, FilesFile}); err != nil {
		return nil, zerr.Wrap(err, domain.ErrFileHashFailed.Error())
	}

	return pkg, nil
}

func readRecord(path string) (record, error) {
	f, err := os.Open(path) //nolint:gosec // Path is inside the database root
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	return parseRecord(f)
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).UTC(), nil
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func mismatch(path, field, want, got string) error {
	err := zerr.With(domain.ErrPackageParseFailed, "path", path)
	err = zerr.With(err, "field", field)
	err = zerr.With(err, "expected", want)
	return zerr.With(err, "found", got)
}

func invalidField(path, field string, cause error) error {
	err := zerr.Wrap(cause, domain.ErrPackageParseFailed.Error())
	err = zerr.With(err, "path", path)
	return zerr.With(err, "field", field)
}
