package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse extracts numeric components from a version string.
// Handles "5.0.3", "v24.12.0", "14.4.258.13", resource tuples like "5,0,3"
// and a hyphenated pre-release suffix ("5.0.3-rc1"). ok is false when any
// component is not a number.
func Parse(v string) (parts []int, pre string, ok bool) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if i := strings.IndexByte(v, '-'); i >= 0 {
		v, pre = v[:i], v[i:]
	}
	if v == "" {
		return nil, pre, false
	}

	for _, s := range strings.FieldsFunc(v, func(r rune) bool { return r == '.' || r == ',' }) {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || strings.HasPrefix(s, "+") {
			return nil, pre, false
		}
		parts = append(parts, n)
	}
	if len(parts) == 0 {
		return nil, pre, false
	}
	return parts, pre, true
}

// Compare compares two version strings.
// Returns -1 if a < b, 0 if a == b, +1 if a > b.
// Missing trailing components count as zero, pre-releases sort before the
// matching release, and unparsable strings sort before any version.
func Compare(a, b string) int {
	aParts, aPre, aOK := Parse(a)
	bParts, bPre, bOK := Parse(b)

	switch {
	case !aOK && !bOK:
		return strings.Compare(a, b)
	case !aOK:
		return -1
	case !bOK:
		return 1
	}

	maxLen := max(len(aParts), len(bParts))
	for i := 0; i < maxLen; i++ {
		av, bv := 0, 0
		if i < len(aParts) {
			av = aParts[i]
		}
		if i < len(bParts) {
			bv = bParts[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}

	switch {
	case aPre == "" && bPre == "":
		return 0
	case aPre != "" && bPre == "":
		return -1
	case aPre == "" && bPre != "":
		return 1
	default:
		return comparePreRelease(aPre, bPre)
	}
}

// Part names a component of a dotted version.
type Part int

const (
	Major Part = iota
	Minor
	Patch
	// Build is the fourth component V8 versions carry.
	Build
)

// ParsePart accepts major, minor, patch or build.
func ParsePart(s string) (Part, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	case "build":
		return Build, nil
	}
	return 0, fmt.Errorf("invalid version part %q (want major, minor, patch or build)", s)
}

// Increment bumps one component of v and zeroes the ones after it. The
// result keeps v's component count and drops any pre-release suffix.
func Increment(v string, p Part) (string, error) {
	parts, _, ok := Parse(v)
	if !ok {
		return "", fmt.Errorf("cannot parse version %q", v)
	}
	if int(p) >= len(parts) {
		return "", fmt.Errorf("version %q has no component %d", v, int(p)+1)
	}

	parts[p]++
	for i := int(p) + 1; i < len(parts); i++ {
		parts[i] = 0
	}
	out := make([]string, len(parts))
	for i, n := range parts {
		out[i] = strconv.Itoa(n)
	}
	return strings.Join(out, "."), nil
}

// comparePreRelease compares pre-release suffixes like "-rc10" vs "-rc2"
// by splitting each into a text prefix and an optional trailing number, so that
// numeric ordering is used when the text prefixes match.
func comparePreRelease(a, b string) int {
	aText, aNum := splitTrailingNumber(a)
	bText, bNum := splitTrailingNumber(b)

	if cmp := strings.Compare(aText, bText); cmp != 0 {
		return cmp
	}
	switch {
	case aNum < bNum:
		return -1
	case aNum > bNum:
		return 1
	default:
		return 0
	}
}

// splitTrailingNumber splits a string into a text prefix and a trailing integer.
// e.g. "-alpha21" → ("-alpha", 21), "-pre" → ("-pre", 0), "-rc1" → ("-rc", 1)
func splitTrailingNumber(s string) (string, int) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return s, 0
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return s, 0
	}
	return s[:i], n
}
