package docs

import (
	"path"
	"path/filepath"
)

// FindRelated walks up from the changed file's directory and returns the first
// doc (in list order) living in the current directory. The walk ends after the
// top directory ("." for relative paths, "/" for absolute ones).
func FindRelated(changed string, docs []string) (string, bool) {
	dirs := make([]string, len(docs))
	for i, d := range docs {
		dirs[i] = path.Dir(path.Clean(filepath.ToSlash(d)))
	}

	dir := path.Dir(path.Clean(filepath.ToSlash(changed)))
	for {
		for i, d := range dirs {
			if d == dir {
				return docs[i], true
			}
		}
		parent := path.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
