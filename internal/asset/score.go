package asset

import (
	"strings"

	"github.com/chazuruo/binget/internal/errors"
	"github.com/chazuruo/binget/internal/release"
)

// extensionBonuses ranks archive formats, most preferred first. The first
// (longest, most specific) suffix that matches wins; a name matching none
// of them scores otherExtensionBonus.
var extensionBonuses = []struct {
	suffix string
	bonus  int
}{
	{".tar.gz", 10},
	{".tgz", 9},
	{".zip", 8},
	{".tar.bz2", 7},
	{".bz2", 6},
}

const otherExtensionBonus = 5

// shortNameLimit is the length under which a name earns the short-name
// bonus; short names are less likely to be full source bundles.
const shortNameLimit = 50

// Score computes an asset's selection score purely from its file name.
// Scores start at zero and only add, so they are never negative.
func Score(name string) int {
	score := otherExtensionBonus
	for _, e := range extensionBonuses {
		if strings.HasSuffix(name, e.suffix) {
			score = e.bonus
			break
		}
	}

	if len(name) < shortNameLimit {
		score += 3
	}

	lower := strings.ToLower(name)
	if !strings.Contains(lower, "src") && !strings.Contains(lower, "source") {
		score += 2
	}

	return score
}

// Select picks the single best candidate from a filtered set. A later
// candidate replaces the running best only when its score is strictly
// greater, so catalog order breaks ties.
func Select(assets []release.Asset) (release.Asset, error) {
	if len(assets) == 0 {
		return release.Asset{}, errors.Wrap(errors.ErrNotFound, "no candidates to score")
	}

	best := assets[0]
	bestScore := Score(best.Name)
	for _, a := range assets[1:] {
		if s := Score(a.Name); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best, nil
}
