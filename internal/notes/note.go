// Package notes renders and appends update notes to documentation files.
package notes

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// GenericDetail is the bullet used when no change details are available.
const GenericDetail = "Details about the changes..."

// Heading returns the heading text used for changed.
func Heading(changed string) string {
	return "Update for " + changed
}

// Block renders the note appended for one changed file. Each detail becomes a
// bullet; with no details the generic bullet is used.
func Block(changed string, details []string) string {
	if len(details) == 0 {
		details = []string{GenericDetail}
	}
	var sb strings.Builder
	sb.WriteString("\n\n### ")
	sb.WriteString(Heading(changed))
	sb.WriteString("\n")
	for _, d := range details {
		sb.WriteString("- ")
		sb.WriteString(d)
		sb.WriteString("\n")
	}
	return sb.String()
}

// FileWriteError indicates a documentation file could not be appended to.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("append to %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

// Append writes block at the end of an existing file. The file is never created.
func Append(path, block string) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &FileWriteError{Path: path, Err: cerr}
		}
	}()
	if _, err := f.WriteString(block); err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	return nil
}

// IsWriteError reports whether err carries a FileWriteError.
func IsWriteError(err error) bool {
	var fwe *FileWriteError
	return errors.As(err, &fwe)
}
