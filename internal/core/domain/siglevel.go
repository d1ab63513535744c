package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// SignatureLevel is the set of signature verification requirements for packages and databases.
type SignatureLevel uint32

const (
	// SigPackage requires package signatures.
	SigPackage SignatureLevel = 1 << 0
	// SigPackageOptional accepts unsigned packages.
	SigPackageOptional SignatureLevel = 1 << 1
	// SigPackageMarginalOK accepts packages signed with marginally trusted keys.
	SigPackageMarginalOK SignatureLevel = 1 << 2
	// SigPackageUnknownOK accepts packages signed with keys of unknown trust.
	SigPackageUnknownOK SignatureLevel = 1 << 3

	// SigDatabase requires database signatures.
	SigDatabase SignatureLevel = 1 << 10
	// SigDatabaseOptional accepts unsigned databases.
	SigDatabaseOptional SignatureLevel = 1 << 11
	// SigDatabaseMarginalOK accepts databases signed with marginally trusted keys.
	SigDatabaseMarginalOK SignatureLevel = 1 << 12
	// SigDatabaseUnknownOK accepts databases signed with keys of unknown trust.
	SigDatabaseUnknownOK SignatureLevel = 1 << 13

	// SigUseDefault defers to the handle's default level.
	SigUseDefault SignatureLevel = 1 << 30
)

// DefaultSigLevel is "Required DatabaseOptional".
const DefaultSigLevel = SigPackage | SigDatabase | SigDatabaseOptional

var sigLevelNames = []struct {
	flag SignatureLevel
	name string
}{
	{SigPackage, "Package"},
	{SigPackageOptional, "PackageOptional"},
	{SigPackageMarginalOK, "PackageMarginalOK"},
	{SigPackageUnknownOK, "PackageUnknownOK"},
	{SigDatabase, "Database"},
	{SigDatabaseOptional, "DatabaseOptional"},
	{SigDatabaseMarginalOK, "DatabaseMarginalOK"},
	{SigDatabaseUnknownOK, "DatabaseUnknownOK"},
	{SigUseDefault, "UseDefault"},
}

// Has reports whether every bit of flag is set.
func (l SignatureLevel) Has(flag SignatureLevel) bool {
	return l&flag == flag
}

func (l SignatureLevel) String() string {
	if l == 0 {
		return "Never"
	}
	var parts []string
	for _, n := range sigLevelNames {
		if l.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseSignatureLevel applies pacman.conf style SigLevel options on top of DefaultSigLevel.
// Options are Never, Optional, Required, TrustedOnly and TrustAll, each optionally prefixed
// with Package or Database to restrict it to one side.
func ParseSignatureLevel(options []string) (SignatureLevel, error) {
	level := DefaultSigLevel
	for _, opt := range options {
		pkg, db := true, true
		value := opt
		switch {
		case strings.HasPrefix(opt, "Package"):
			value = strings.TrimPrefix(opt, "Package")
			db = false
		case strings.HasPrefix(opt, "Database"):
			value = strings.TrimPrefix(opt, "Database")
			pkg = false
		}

		var sig, optional, trust SignatureLevel
		if pkg {
			sig |= SigPackage
			optional |= SigPackageOptional
			trust |= SigPackageMarginalOK | SigPackageUnknownOK
		}
		if db {
			sig |= SigDatabase
			optional |= SigDatabaseOptional
			trust |= SigDatabaseMarginalOK | SigDatabaseUnknownOK
		}

		switch value {
		case "Never":
			level &^= sig | optional
		case "Optional":
			level |= sig | optional
		case "Required":
			level |= sig
			level &^= optional
		case "TrustedOnly":
			level &^= trust
		case "TrustAll":
			level |= trust
		default:
			return 0, zerr.With(ErrInvalidSigLevel, "option", opt)
		}
	}
	return level, nil
}

// DBUsage is the set of operations a database is used for.
type DBUsage uint8

const (
	// UsageSync allows refreshing the database.
	UsageSync DBUsage = 1 << iota
	// UsageSearch allows searching the database.
	UsageSearch
	// UsageInstall allows installing packages from the database.
	UsageInstall
	// UsageUpgrade allows upgrading packages from the database.
	UsageUpgrade

	// UsageAll enables every usage.
	UsageAll = UsageSync | UsageSearch | UsageInstall | UsageUpgrade
)

// Has reports whether every bit of u is set.
func (d DBUsage) Has(u DBUsage) bool {
	return d&u == u
}
