package domain

import "strings"

// VerCmp compares two package versions of the form [epoch:]pkgver[-pkgrel].
// It returns -1 if a is older than b, 0 if they are equal and 1 if a is newer.
//
// Epochs compare first (a missing epoch is 0), then pkgver; pkgrel is only compared
// when both versions carry one.
func VerCmp(a, b string) int {
	if a == b {
		return 0
	}

	epochA, verA, relA := parseEVR(a)
	epochB, verB, relB := parseEVR(b)

	if ret := rpmvercmp(epochA, epochB); ret != 0 {
		return ret
	}
	if ret := rpmvercmp(verA, verB); ret != 0 {
		return ret
	}
	if relA != "" && relB != "" {
		return rpmvercmp(relA, relB)
	}
	return 0
}

// parseEVR splits a version into epoch, version and release.
func parseEVR(evr string) (epoch, version, release string) {
	epoch = "0"
	rest := evr

	i := 0
	for i < len(rest) && isDigit(rest[i]) {
		i++
	}
	if i < len(rest) && rest[i] == ':' {
		if i > 0 {
			epoch = rest[:i]
		}
		rest = rest[i+1:]
	}

	if dash := strings.LastIndexByte(rest, '-'); dash >= 0 {
		return epoch, rest[:dash], rest[dash+1:]
	}
	return epoch, rest, ""
}

// rpmvercmp compares two version segments strings: alternating runs of digits and
// letters, delimited by any other characters.
func rpmvercmp(a, b string) int {
	if a == b {
		return 0
	}

	one, two := 0, 0
	ptr1, ptr2 := 0, 0

	for one < len(a) && two < len(b) {
		for one < len(a) && !isAlnum(a[one]) {
			one++
		}
		for two < len(b) && !isAlnum(b[two]) {
			two++
		}

		if one >= len(a) || two >= len(b) {
			break
		}

		// Different separator lengths decide the comparison.
		if sep1, sep2 := one-ptr1, two-ptr2; sep1 != sep2 {
			if sep1 < sep2 {
				return -1
			}
			return 1
		}

		ptr1, ptr2 = one, two

		isNum := isDigit(a[ptr1])
		if isNum {
			for ptr1 < len(a) && isDigit(a[ptr1]) {
				ptr1++
			}
			for ptr2 < len(b) && isDigit(b[ptr2]) {
				ptr2++
			}
		} else {
			for ptr1 < len(a) && isAlpha(a[ptr1]) {
				ptr1++
			}
			for ptr2 < len(b) && isAlpha(b[ptr2]) {
				ptr2++
			}
		}

		seg1, seg2 := a[one:ptr1], b[two:ptr2]

		// Numeric segments are always newer than alpha segments.
		if seg2 == "" {
			if isNum {
				return 1
			}
			return -1
		}

		if isNum {
			seg1 = strings.TrimLeft(seg1, "0")
			seg2 = strings.TrimLeft(seg2, "0")
			if len(seg1) > len(seg2) {
				return 1
			}
			if len(seg1) < len(seg2) {
				return -1
			}
		}

		if c := strings.Compare(seg1, seg2); c != 0 {
			return c
		}

		one, two = ptr1, ptr2
	}

	if one >= len(a) && two >= len(b) {
		return 0
	}

	// A remaining alpha segment never beats an empty one.
	if (one >= len(a) && !isAlpha(b[two])) || (one < len(a) && isAlpha(a[one])) {
		return -1
	}
	return 1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isDigit(c) || isAlpha(c)
}
