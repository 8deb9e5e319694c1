package changes_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/KaramelBytes/docbump-cli/internal/changes"
)

func TestFilterAPI(t *testing.T) {
	paths := []string{
		"src/api/users.py",
		"src/apix/other.py",
		"",
		"./src/api/v2/handler.py",
		"lib/unrelated/file.ext",
		"internal/http/routes.go",
		"src/api",
	}
	got := changes.FilterAPI(paths, []string{"src/api/", "internal/http"})
	want := []string{"src/api/users.py", "src/api/v2/handler.py", "internal/http/routes.go", "src/api"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}
	if got := changes.FilterAPI(paths, nil); len(got) != 0 {
		t.Fatalf("no dirs should keep nothing, got %v", got)
	}
}

func TestListSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changed.txt")
	if err := os.WriteFile(path, []byte("src/api/users.py\r\n\nREADME.md\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, ok := changes.Get(changes.SourceList, changes.SourceConfig{ChangesFile: path})
	if !ok {
		t.Fatal("list source not registered")
	}
	got, err := src.ChangedFiles(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("changed files: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"src/api/users.py", "README.md"}) {
		t.Fatalf("got %v", got)
	}

	stdin := &changes.ListSource{Path: "-", Stdin: strings.NewReader("a\nb\n")}
	got, err = stdin.ChangedFiles(context.Background(), "")
	if err != nil || !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("stdin: %v %v", got, err)
	}

	if _, err := (&changes.ListSource{}).ChangedFiles(context.Background(), ""); err == nil {
		t.Fatal("expected error without a changes file")
	}
}

func TestRegistry(t *testing.T) {
	if !reflect.DeepEqual(changes.Names(), []string{"git", "list"}) {
		t.Fatalf("names: %v", changes.Names())
	}
	src, ok := changes.Get(changes.SourceGit, changes.SourceConfig{Dir: "repo"})
	if !ok {
		t.Fatal("git source not registered")
	}
	g, isGit := src.(*changes.GitSource)
	if !isGit || g.Timeout <= 0 || g.Dir != "repo" {
		t.Fatalf("unexpected git source: %#v", src)
	}
	if _, ok := changes.Get("svn", changes.SourceConfig{}); ok {
		t.Fatal("unexpected source")
	}
}
