// Package asset narrows a release catalog down to the one file worth
// downloading. Asset names are free-form strings chosen by each upstream
// project, so matching is substring-based against the platform pattern sets
// and selection is a deterministic scoring heuristic.
package asset

import (
	"strings"

	"github.com/chazuruo/binget/internal/errors"
	"github.com/chazuruo/binget/internal/platform"
	"github.com/chazuruo/binget/internal/release"
)

// Matcher filters a catalog by platform and an optional required pattern.
type Matcher struct {
	platform platform.Spec
	pattern  string
}

// NewMatcher builds a matcher for the target platform. pattern, when
// non-empty, is a required case-sensitive substring.
func NewMatcher(spec platform.Spec, pattern string) *Matcher {
	return &Matcher{platform: spec, pattern: pattern}
}

// Match runs the three filtering passes in order: OS pattern set, arch
// pattern set, then the required pattern. Each pass produces a new list and
// an empty result fails with a NoMatchError carrying the pre-filter names.
func (m *Matcher) Match(assets []release.Asset) ([]release.Asset, error) {
	byOS := filterAny(assets, m.platform.OSPatterns())
	if len(byOS) == 0 {
		return nil, &errors.NoMatchError{Stage: "os", Wanted: m.platform.OS, Available: names(assets)}
	}

	byArch := filterAny(byOS, m.platform.ArchPatterns())
	if len(byArch) == 0 {
		return nil, &errors.NoMatchError{Stage: "arch", Wanted: m.platform.Arch, Available: names(byOS)}
	}

	if m.pattern == "" {
		return byArch, nil
	}

	byPattern := filterExact(byArch, m.pattern)
	if len(byPattern) == 0 {
		return nil, &errors.NoMatchError{Stage: "pattern", Wanted: m.pattern, Available: names(byArch)}
	}
	return byPattern, nil
}

// filterAny keeps assets whose name matches any of the patterns under the
// platform matching rules (case-insensitive, ambiguity-vetoed).
func filterAny(assets []release.Asset, patterns []string) []release.Asset {
	out := make([]release.Asset, 0, len(assets))
	for _, a := range assets {
		for _, p := range patterns {
			if platform.NameMatches(a.Name, p) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// filterExact keeps assets whose name contains the pattern, case-sensitive
// and without any pattern-set expansion.
func filterExact(assets []release.Asset, pattern string) []release.Asset {
	out := make([]release.Asset, 0, len(assets))
	for _, a := range assets {
		if strings.Contains(a.Name, pattern) {
			out = append(out, a)
		}
	}
	return out
}

func names(assets []release.Asset) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.Name)
	}
	return out
}
