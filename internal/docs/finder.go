// Package docs discovers documentation files and associates changed source
// files with the nearest one by directory ancestry.
package docs

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Find expands each pattern against root and returns the concatenated matches
// in pattern order, each pattern's matches sorted lexically. Overlapping
// patterns yield duplicate entries.
func Find(root string, patterns []string) ([]string, error) {
	if root == "" {
		root = "."
	}
	fsys := os.DirFS(root)
	var files []string
	for _, raw := range patterns {
		pattern := strings.TrimPrefix(path.Clean(strings.TrimSpace(raw)), "./")
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("doc pattern %q: %w", raw, doublestar.ErrBadPattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", raw, err)
		}
		sort.Strings(matches)
		explicitDot := strings.HasPrefix(pattern, ".") || strings.Contains(pattern, "/.")
		for _, m := range matches {
			if !explicitDot && hidden(m) {
				continue
			}
			files = append(files, m)
		}
	}
	return files, nil
}

// hidden reports whether any element of p starts with a dot.
func hidden(p string) bool {
	for _, part := range strings.Split(p, "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
