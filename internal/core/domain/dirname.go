package domain

import "strings"

// SplitPackageDirname decomposes a database entry name of the form name-pkgver-pkgrel into
// the package name and its version (pkgver-pkgrel). Package names may contain hyphens;
// the version is always the last two hyphen-separated fields.
func SplitPackageDirname(raw string) (name, version string, ok bool) {
	relSep := strings.LastIndexByte(raw, '-')
	if relSep <= 0 || relSep == len(raw)-1 {
		return "", "", false
	}

	verSep := strings.LastIndexByte(raw[:relSep], '-')
	if verSep <= 0 || verSep == relSep-1 {
		return "", "", false
	}

	return raw[:verSep], raw[verSep+1:], true
}
