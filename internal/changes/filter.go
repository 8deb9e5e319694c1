package changes

import (
	"path"
	"path/filepath"
	"strings"
)

// FilterAPI keeps the paths equal to or nested under one of dirs, in input order.
// "src/api" matches "src/api/users.py" but not "src/apix/users.py".
func FilterAPI(paths, dirs []string) []string {
	prefixes := make([]string, 0, len(dirs))
	for _, d := range dirs {
		d = normalize(d)
		if d == "" {
			continue
		}
		prefixes = append(prefixes, d)
	}

	var out []string
	for _, p := range paths {
		p = normalize(p)
		if p == "" {
			continue
		}
		for _, d := range prefixes {
			if d == "." || p == d || strings.HasPrefix(p, d+"/") {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func normalize(p string) string {
	p = strings.TrimSpace(filepath.ToSlash(p))
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p != "." {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}
