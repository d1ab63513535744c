package domain

import (
	"time"

	packageurl "github.com/package-url/packageurl-go"
)

// InstallReason records why a package was installed.
type InstallReason uint8

const (
	// ReasonExplicit marks a package installed at the user's request.
	ReasonExplicit InstallReason = 0
	// ReasonDependency marks a package installed to satisfy another package.
	ReasonDependency InstallReason = 1
)

func (r InstallReason) String() string {
	if r == ReasonDependency {
		return "dependency"
	}
	return "explicit"
}

// ValidationMethod is a way the package was validated when it was installed.
type ValidationMethod string

// Validation methods as written in the VALIDATION section of a desc record.
const (
	ValidationNone   ValidationMethod = "none"
	ValidationMD5    ValidationMethod = "md5"
	ValidationSHA256 ValidationMethod = "sha256"
	ValidationPGP    ValidationMethod = "pgp"
)

// LocalPackage is the fully parsed record of an installed package.
type LocalPackage struct {
	Name        string
	Version     string
	Base        string
	Description string
	URL         string
	Arch        string
	BuildDate   time.Time
	InstallDate time.Time
	Packager    string
	// Size is the installed size in bytes.
	Size       int64
	Reason     InstallReason
	Validation []ValidationMethod

	Licenses   []string
	Groups     []string
	Depends    []string
	OptDepends []string
	Conflicts  []string
	Provides   []string
	Replaces   []string

	// Files lists the paths owned by the package, relative to the installation root.
	Files []string

	// Path is the package's record directory inside the local database.
	Path string
	// SigLevel is the verification level in force when the record was loaded.
	SigLevel SignatureLevel
	// Checksum fingerprints the record files the package was parsed from.
	Checksum uint64
}

// Key returns the package's identity.
func (p *LocalPackage) Key() PackageKey {
	return NewPackageKey(p.Name, p.Version)
}

// PURL renders the package as a package URL, e.g. pkg:alpm/arch/pacman@6.0.2-1?arch=x86_64.
func (p *LocalPackage) PURL() string {
	var qualifiers packageurl.Qualifiers
	if p.Arch != "" {
		qualifiers = packageurl.QualifiersFromMap(map[string]string{"arch": p.Arch})
	}
	return packageurl.NewPackageURL("alpm", "arch", p.Name, p.Version, qualifiers, "").ToString()
}

// InventoryEntry is the exported summary of one installed package.
type InventoryEntry struct {
	Name        string    `json:"name,omitzero"`
	Version     string    `json:"version,omitzero"`
	PURL        string    `json:"purl,omitzero"`
	Reason      string    `json:"reason,omitzero"`
	InstallDate time.Time `json:"install_date,omitzero"`
	Checksum    string    `json:"checksum,omitzero"`
}
