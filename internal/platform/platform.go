// Package platform canonicalizes OS and architecture names and exposes the
// pattern sets used to match free-form release asset names.
//
// Upstream projects name their assets however they like ("x86_64", "x64",
// "macOS", "win64", ...), so a canonical platform value maps to an ordered
// list of case-insensitive substrings considered equivalent to it. The
// tables are fixed; an unknown value degenerates to a singleton pattern
// equal to the raw value.
package platform

import (
	"runtime"
	"strings"
)

// Spec identifies the target platform for an install.
type Spec struct {
	OS   string // canonical, e.g. "linux", "darwin", "windows"
	Arch string // canonical, e.g. "amd64", "arm64"
}

// Current returns the spec for the running platform.
func Current() Spec {
	return Spec{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// String returns the platform string in the format "os/arch".
func (s Spec) String() string {
	return s.OS + "/" + s.Arch
}

// OSPatterns returns the asset-name substrings equivalent to the spec's OS.
func (s Spec) OSPatterns() []string {
	return patternsFor(s.OS, osPatterns)
}

// ArchPatterns returns the asset-name substrings equivalent to the spec's
// architecture.
func (s Spec) ArchPatterns() []string {
	return patternsFor(s.Arch, archPatterns)
}

// canonicalOS maps raw OS spellings to canonical GOOS values.
var canonicalOS = map[string]string{
	"linux":   "linux",
	"darwin":  "darwin",
	"macos":   "darwin",
	"osx":     "darwin",
	"mac":     "darwin",
	"windows": "windows",
	"win":     "windows",
	"freebsd": "freebsd",
	"openbsd": "openbsd",
	"netbsd":  "netbsd",
}

// canonicalArch maps raw architecture spellings to canonical GOARCH values.
var canonicalArch = map[string]string{
	"amd64":   "amd64",
	"x86_64":  "amd64",
	"x64":     "amd64",
	"arm64":   "arm64",
	"aarch64": "arm64",
	"386":     "386",
	"i386":    "386",
	"i686":    "386",
	"x86":     "386",
	"arm":     "arm",
	"armv6":   "arm",
	"armv6l":  "arm",
	"armv7":   "arm",
	"armv7l":  "arm",
}

// osPatterns lists, per canonical OS, the substrings an asset name may use
// for that OS. Order matters only for display; matching tries all of them.
var osPatterns = map[string][]string{
	"linux":   {"linux"},
	"darwin":  {"darwin", "macos", "osx", "mac"},
	"windows": {"windows", "win64", "win32", "win"},
	"freebsd": {"freebsd"},
	"openbsd": {"openbsd"},
	"netbsd":  {"netbsd"},
}

// archPatterns lists, per canonical architecture, the substrings an asset
// name may use for that architecture.
var archPatterns = map[string][]string{
	"amd64": {"amd64", "x86_64", "x64"},
	"arm64": {"arm64", "aarch64"},
	"386":   {"386", "i386", "i686", "x86"},
	"arm":   {"arm", "armv6", "armv7"},
}

// patternVetoes lists, per ambiguous short pattern, the longer spellings
// that contain it but belong to a different canonical value. A name carrying
// one of those spellings is not a match for the short pattern: "win" must
// not match "darwin", "arm" must not match "arm64", "x86" must not match
// "x86_64".
var patternVetoes = map[string][]string{
	"win": {"darwin"},
	"arm": {"arm64"},
	"x86": {"x86_64", "x86-64"},
}

// NameMatches reports whether an asset name matches a single platform
// pattern: case-insensitive substring containment, minus the veto table.
func NameMatches(name, pattern string) bool {
	lower := strings.ToLower(name)
	p := strings.ToLower(pattern)
	if !strings.Contains(lower, p) {
		return false
	}
	for _, veto := range patternVetoes[p] {
		if strings.Contains(lower, veto) {
			return false
		}
	}
	return true
}

// CanonicalOS normalizes a raw OS name ("macOS" -> "darwin"). Unknown
// values are lowercased and returned as-is.
func CanonicalOS(raw string) string {
	return canonicalize(raw, canonicalOS)
}

// CanonicalArch normalizes a raw architecture name ("x86_64" -> "amd64").
// Unknown values are lowercased and returned as-is.
func CanonicalArch(raw string) string {
	return canonicalize(raw, canonicalArch)
}

func canonicalize(raw string, table map[string]string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := table[normalized]; ok {
		return canonical
	}
	return normalized
}

func patternsFor(value string, table map[string][]string) []string {
	if patterns, ok := table[value]; ok {
		// Copy so callers cannot mutate the fixed tables.
		out := make([]string, len(patterns))
		copy(out, patterns)
		return out
	}
	return []string{value}
}
