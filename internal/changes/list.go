package changes

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ListSource reads newline-separated changed paths from a file, or from Stdin
// when Path is "-". The base branch is ignored; the list is taken as-is.
type ListSource struct {
	Path  string
	Stdin io.Reader
}

func (l *ListSource) ChangedFiles(_ context.Context, _ string) ([]string, error) {
	if l.Path == "" {
		return nil, fmt.Errorf("list source: changes_file is required")
	}
	var (
		b   []byte
		err error
	)
	if l.Path == "-" {
		in := l.Stdin
		if in == nil {
			in = os.Stdin
		}
		b, err = io.ReadAll(in)
	} else {
		b, err = os.ReadFile(l.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read changes file: %w", err)
	}
	return splitLines(string(b)), nil
}
