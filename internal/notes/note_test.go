package notes_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/docbump-cli/internal/notes"
)

func TestBlockGeneric(t *testing.T) {
	got := notes.Block("src/api/users.py", nil)
	want := "\n\n### Update for src/api/users.py\n- Details about the changes...\n"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestBlockWithDetails(t *testing.T) {
	got := notes.Block("src/api/users.py", []string{"Added function: list_users()", "Lines: +3 -0"})
	if !strings.Contains(got, "- Added function: list_users()\n- Lines: +3 -0\n") {
		t.Fatalf("details missing: %q", got)
	}
	if strings.Contains(got, notes.GenericDetail) {
		t.Fatalf("generic bullet should be replaced: %q", got)
	}
}

func TestAppendTwiceIsNotIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	if err := os.WriteFile(path, []byte("# Users API\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	block := notes.Block("src/api/users.py", nil)
	for i := 0; i < 2; i++ {
		if err := notes.Append(path, block); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(b), block); got != 2 {
		t.Fatalf("expected 2 identical blocks, found %d in %q", got, b)
	}
	if !strings.HasPrefix(string(b), "# Users API\n") {
		t.Fatalf("original content clobbered: %q", b)
	}
}

func TestAppendMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone", "README.md")
	err := notes.Append(path, notes.Block("src/api/users.py", nil))
	var fwe *notes.FileWriteError
	if !errors.As(err, &fwe) {
		t.Fatalf("expected FileWriteError, got %T: %v", err, err)
	}
	if fwe.Path != path || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("unexpected error: %v", err)
	}
	if !notes.IsWriteError(err) {
		t.Fatal("IsWriteError should report true")
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, fs.ErrNotExist) {
		t.Fatal("append must not create the file")
	}
}
