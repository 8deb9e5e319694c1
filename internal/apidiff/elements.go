// Package apidiff extracts API elements from source files and reports how
// they changed between two versions.
package apidiff

import (
	"path/filepath"
	"strings"
)

// Element kinds.
const (
	KindFunction = "function"
	KindMethod   = "method"
	KindClass    = "class"
	KindType     = "type"
)

// Element is a named API declaration found in a source file.
type Element struct {
	Name      string
	Kind      string
	Signature string
	Doc       string
}

// Extractor pulls API elements out of one file's content.
type Extractor interface {
	CanExtract(filename string) bool
	Extract(filename string, src []byte) ([]Element, error)
}

var registry []Extractor

// Register adds an extractor implementation to the registry.
func Register(e Extractor) {
	registry = append(registry, e)
}

// Supported reports whether any registered extractor handles filename.
func Supported(filename string) bool {
	for _, e := range registry {
		if e.CanExtract(filename) {
			return true
		}
	}
	return false
}

// Extract selects an extractor by filename. Unsupported files have no elements.
func Extract(filename string, src []byte) ([]Element, error) {
	for _, e := range registry {
		if e.CanExtract(filename) {
			return e.Extract(filename, src)
		}
	}
	return nil, nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func init() {
	Register(pythonExtractor{})
	Register(goExtractor{})
}
