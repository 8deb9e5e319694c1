package changes

import (
	"errors"
	"fmt"
	"time"
)

// ToolInvocationError indicates the external diff tool failed or could not be started.
type ToolInvocationError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ToolInvocationError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
}

func (e *ToolInvocationError) Unwrap() error { return e.Err }

// TimeoutError indicates the external diff tool did not finish in time.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Command, e.Timeout)
}

// ErrNotAtRevision reports that a path does not exist at the requested revision.
var ErrNotAtRevision = errors.New("path not present at revision")
