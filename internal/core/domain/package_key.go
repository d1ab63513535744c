package domain

import "cmp"

// PackageKey identifies one installed package by name and version.
// It is comparable and used directly as a map key.
type PackageKey struct {
	Name    string
	Version string
}

// NewPackageKey creates a PackageKey.
func NewPackageKey(name, version string) PackageKey {
	return PackageKey{Name: name, Version: version}
}

// String renders the key the way the package directory is named.
func (k PackageKey) String() string {
	return k.Name + "-" + k.Version
}

// Compare orders two keys by version only, using pacman version ordering.
// It is only meaningful for keys sharing a name.
func (k PackageKey) Compare(other PackageKey) int {
	return VerCmp(k.Version, other.Version)
}

// ComparePackageKeys orders keys by name, then by version. Suitable for slices.SortFunc.
func ComparePackageKeys(a, b PackageKey) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return a.Compare(b)
}
