// Package changes reports which files changed relative to a base branch.
package changes

import (
	"context"
	"io"
	"sort"
	"time"
)

// ChangeSource lists paths that differ between base and the current revision.
type ChangeSource interface {
	ChangedFiles(ctx context.Context, base string) ([]string, error)
}

// ContentSource is an optional extension that can read a file as it was at a revision.
// MergeBase resolves the revision that ChangedFiles compared against, so
// callers read the same baseline the change list was computed from.
type ContentSource interface {
	MergeBase(ctx context.Context, base string) (string, error)
	Show(ctx context.Context, rev, path string) ([]byte, error)
}

// Source names accepted by Get.
const (
	SourceGit  = "git"
	SourceList = "list"
)

// SourceConfig carries the knobs shared by the built-in sources.
type SourceConfig struct {
	// Common
	Dir string
	// git
	Binary  string
	Timeout time.Duration
	// list
	ChangesFile string
	Stdin       io.Reader
}

// SourceFactory builds a ChangeSource from SourceConfig.
type SourceFactory func(SourceConfig) ChangeSource

var registry = map[string]SourceFactory{}

// Register registers a source name with its factory.
func Register(name string, f SourceFactory) { registry[name] = f }

// Get creates the named ChangeSource if registered.
func Get(name string, cfg SourceConfig) (ChangeSource, bool) {
	if f, ok := registry[name]; ok {
		return f(cfg), true
	}
	return nil, false
}

// Names lists registered sources in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(SourceGit, func(c SourceConfig) ChangeSource {
		if c.Timeout <= 0 {
			c.Timeout = 60 * time.Second
		}
		return &GitSource{Dir: c.Dir, Binary: c.Binary, Timeout: c.Timeout}
	})
	Register(SourceList, func(c SourceConfig) ChangeSource {
		return &ListSource{Path: c.ChangesFile, Stdin: c.Stdin}
	})
}

// Detect asks src for the changed files and keeps those under one of dirs.
func Detect(ctx context.Context, src ChangeSource, base string, dirs []string) ([]string, error) {
	all, err := src.ChangedFiles(ctx, base)
	if err != nil {
		return nil, err
	}
	return FilterAPI(all, dirs), nil
}
