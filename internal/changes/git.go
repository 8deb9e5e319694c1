package changes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// GitSource shells out to git in Dir. Paths are reported and resolved
// relative to Dir, which may be a subdirectory of the repository.
type GitSource struct {
	Dir     string
	Binary  string
	Timeout time.Duration
}

// ChangedFiles runs `git diff --name-only --relative -z <base>...HEAD` with
// path quoting disabled so non-ASCII names come back verbatim.
func (g *GitSource) ChangedFiles(ctx context.Context, base string) ([]string, error) {
	out, err := g.run(ctx, "-c", "core.quotePath=false", "diff", "--name-only", "--relative", "-z", base+"...HEAD")
	if err != nil {
		return nil, err
	}
	return splitNUL(out), nil
}

// MergeBase returns the commit ChangedFiles diffs against (`git merge-base <base> HEAD`).
func (g *GitSource) MergeBase(ctx context.Context, base string) (string, error) {
	out, err := g.run(ctx, "merge-base", base, "HEAD")
	if err != nil {
		return "", err
	}
	rev := strings.TrimSpace(string(out))
	if rev == "" {
		return "", fmt.Errorf("no merge base between %s and HEAD", base)
	}
	return rev, nil
}

// Show returns the content of path at rev. A path absent at rev yields an
// error matching ErrNotAtRevision; other failures keep their tool error type.
func (g *GitSource) Show(ctx context.Context, rev, path string) ([]byte, error) {
	listed, err := g.run(ctx, "ls-tree", "--name-only", "-z", rev, "--", path)
	if err != nil {
		return nil, err
	}
	if len(splitNUL(listed)) == 0 {
		return nil, fmt.Errorf("%s at %s: %w", path, rev, ErrNotAtRevision)
	}
	return g.run(ctx, "show", rev+":./"+path)
}

func (g *GitSource) run(ctx context.Context, args ...string) ([]byte, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	command := bin + " " + strings.Join(args, " ")
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = g.Dir
	cmd.WaitDelay = time.Second
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{Command: command, Timeout: g.Timeout}
		}
		return nil, &ToolInvocationError{Command: command, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return out, nil
}

func splitNUL(b []byte) []string {
	var paths []string
	for _, p := range strings.Split(string(b), "\x00") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
