// Package locate finds the actual executable inside an extracted tree.
//
// Archives are arbitrarily shaped: the binary may sit at the root, under
// bin/, next to completions and man pages that share its name, or anywhere
// else. When no explicit subdirectory is configured the search runs phases
// in order, stopping at the first success:
//
//  1. exact file at the tree root
//  2. first executable with the name anywhere in the tree
//  3. all files with the name, ranked by the location rule table
//  4. first name match regardless of score (case-insensitive catch-all)
package locate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazuruo/binget/internal/errors"
)

const (
	listingFileCap = 20
	listingDirCap  = 10
)

// rule contributes a signed weight when its predicate holds for a
// candidate. Keeping the heuristic as a flat table makes it reviewable and
// testable in isolation from filesystem traversal.
type rule struct {
	name   string
	weight int
	match  func(relDir string, info fs.FileInfo) bool
}

var rules = []rule{
	{"root directory", 100, func(relDir string, _ fs.FileInfo) bool {
		return relDir == "."
	}},
	{"bin directory", 50, func(relDir string, _ fs.FileInfo) bool {
		return strings.Contains(relDir, "bin")
	}},
	{"completion directory", -50, func(relDir string, _ fs.FileInfo) bool {
		return strings.Contains(relDir, "completion") || strings.Contains(relDir, "bash_completion")
	}},
	{"documentation directory", -30, func(relDir string, _ fs.FileInfo) bool {
		return strings.Contains(relDir, "doc") || strings.Contains(relDir, "man")
	}},
	{"auxiliary directory", -30, func(relDir string, _ fs.FileInfo) bool {
		return strings.Contains(relDir, "config") || strings.Contains(relDir, "example") || strings.Contains(relDir, "sample")
	}},
	{"executable", 20, func(_ string, info fs.FileInfo) bool {
		return info.Mode()&0111 != 0
	}},
	{"size over 1MB", 10, func(_ string, info fs.FileInfo) bool {
		return info.Size() > 1<<20
	}},
	{"size over 100KB", 5, func(_ string, info fs.FileInfo) bool {
		return info.Size() <= 1<<20 && info.Size() > 100<<10
	}},
}

// ScoreCandidate applies the rule table to a candidate identified by its
// path relative to the search root.
func ScoreCandidate(rel string, info fs.FileInfo) int {
	relDir := strings.ToLower(filepath.Dir(rel))

	score := 0
	for _, r := range rules {
		if r.match(relDir, info) {
			score += r.weight
		}
	}
	return score
}

// Locate finds the binary under root. When subdir is non-empty only
// root/subdir/binaryName is considered; otherwise the phased heuristic
// search runs.
func Locate(root, binaryName, subdir string) (string, error) {
	if subdir != "" {
		return locateExplicit(root, binaryName, subdir)
	}

	// Phase 1: exact file at the tree root.
	rootPath := filepath.Join(root, binaryName)
	if info, err := os.Stat(rootPath); err == nil && info.Mode().IsRegular() {
		return rootPath, nil
	}

	matches, loose := collectMatches(root, binaryName)

	// Phase 2: any executable with the exact name, first match wins.
	for _, c := range matches {
		if c.info.Mode()&0111 != 0 {
			return c.path, nil
		}
	}

	// Phase 3: rank every exact-name match; ties keep the earlier find.
	if len(matches) > 0 {
		best := matches[0]
		bestScore := ScoreCandidate(best.rel, best.info)
		for _, c := range matches[1:] {
			if s := ScoreCandidate(c.rel, c.info); s > bestScore {
				best, bestScore = c, s
			}
		}
		return best.path, nil
	}

	// Phase 4: catch-all, first loose (case-insensitive) name match.
	if len(loose) > 0 {
		return loose[0].path, nil
	}

	return "", &errors.LocateError{Name: binaryName, Dir: root, Listing: listTree(root)}
}

func locateExplicit(root, binaryName, subdir string) (string, error) {
	dir := filepath.Join(root, subdir)
	path := filepath.Join(dir, binaryName)
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return path, nil
	}

	listing := make([]string, 0, listingFileCap)
	if entries, err := os.ReadDir(dir); err == nil {
		for _, e := range entries {
			if len(listing) >= listingFileCap {
				break
			}
			name := e.Name()
			if e.IsDir() {
				name += "/"
			}
			listing = append(listing, filepath.Join(subdir, name))
		}
	}
	return "", &errors.LocateError{Name: binaryName, Dir: dir, Listing: listing}
}

type match struct {
	path string // absolute
	rel  string // relative to the search root
	info fs.FileInfo
}

// collectMatches walks the tree once, gathering exact-name file matches in
// walk order plus case-insensitive matches for the catch-all phase.
func collectMatches(root, binaryName string) (exact, loose []match) {
	lowerName := strings.ToLower(binaryName)

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		m := match{path: path, rel: rel, info: info}
		switch {
		case d.Name() == binaryName:
			exact = append(exact, m)
		case strings.ToLower(d.Name()) == lowerName:
			loose = append(loose, m)
		}
		return nil
	})

	return exact, loose
}

// listTree returns a capped listing of the tree for LocateError diagnosis.
func listTree(root string) []string {
	var files, dirs []string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if len(dirs) < listingDirCap {
				dirs = append(dirs, rel+"/")
			}
		} else if len(files) < listingFileCap {
			files = append(files, rel)
		}
		if len(dirs) >= listingDirCap && len(files) >= listingFileCap {
			return fs.SkipAll
		}
		return nil
	})

	return append(dirs, files...)
}
