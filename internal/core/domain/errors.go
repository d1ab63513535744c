package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// Apart from ErrInvalidLocalPackage, these values name the message of a failure. Callers
// wrap them with zerr.Wrap(err, ErrX.Error()) or copy them with zerr.With, so the returned
// error carries the message but does not match the sentinel with errors.Is.
var (
	// ErrInvalidLocalPackage is returned when a package is not present in the local database,
	// or when an entry of the database directory cannot be decomposed into a name and version.
	ErrInvalidLocalPackage = zerr.New("invalid local package")

	// ErrDuplicatePackage is the message of the panic raised when two database entries decompose to the
	// same name and version. Directory names are unique, so this only fires on a filesystem
	// that breaks that assumption.
	ErrDuplicatePackage = zerr.New("found package in local database with duplicate name/version")

	// ErrLocalDBReadFailed is the message used when the local database directory cannot be listed.
	ErrLocalDBReadFailed = zerr.New("failed to read local database directory")

	// ErrLocalDBStatFailed is the message used when the local database root cannot be queried.
	ErrLocalDBStatFailed = zerr.New("failed to stat local database root")

	// ErrLocalDBListFailed is the message used when the local database directory cannot be checked for entries.
	ErrLocalDBListFailed = zerr.New("could not check contents of local database directory")

	// ErrInvalidDBVersion is the message used when the version marker does not hold a number.
	ErrInvalidDBVersion = zerr.New("local database version is not a valid number")

	// ErrVersionFileReadFailed is the message used when the version marker exists but cannot be read.
	ErrVersionFileReadFailed = zerr.New("could not read version file for the local database")

	// ErrVersionFileCreateFailed is the message used when the version marker of an empty database cannot be created.
	ErrVersionFileCreateFailed = zerr.New("could not create version file for local database")

	// ErrPackageLoadFailed is the message used when a lazily loaded package record cannot be built.
	ErrPackageLoadFailed = zerr.New("failed to load local package")

	// ErrPackageParseFailed is the message used when a package record on disk is malformed.
	ErrPackageParseFailed = zerr.New("failed to parse package record")

	// ErrConfigReadFailed is the message used when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is the message used when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidSigLevel is the message used when a signature level option is not recognised.
	ErrInvalidSigLevel = zerr.New("invalid signature level")

	// ErrInventoryWriteFailed is the message used when the package inventory cannot be written.
	ErrInventoryWriteFailed = zerr.New("failed to write package inventory")

	// ErrFileHashFailed is the message used when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")
)

// InvalidLocalPackageError reports the raw name that could not be found in, or parsed from,
// the local database. It unwraps to ErrInvalidLocalPackage.
type InvalidLocalPackageError struct {
	Name string
}

// NewInvalidLocalPackageError creates an InvalidLocalPackageError for name.
func NewInvalidLocalPackageError(name string) error {
	return &InvalidLocalPackageError{Name: name}
}

func (e *InvalidLocalPackageError) Error() string {
	return fmt.Sprintf("invalid local package: %q", e.Name)
}

func (e *InvalidLocalPackageError) Unwrap() error {
	return ErrInvalidLocalPackage
}
