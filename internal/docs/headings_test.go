package docs_test

import (
	"reflect"
	"testing"

	"github.com/KaramelBytes/docbump-cli/internal/docs"
)

func TestHeadings(t *testing.T) {
	src := "# API\r\n\r\nIntro\r\n\r\n```md\r\n### Update for fake.py\r\n```\r\n\r\n### Update for src/api/__init__.py\r\n- Details about the changes...\r\n\r\nSetext\r\n------\r\n"
	got, err := docs.Headings([]byte(src))
	if err != nil {
		t.Fatalf("headings: %v", err)
	}
	want := []string{"API", "Update for src/api/__init__.py", "Setext"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestHasHeading(t *testing.T) {
	src := []byte("# Users\n\n### Update for src/api/users.py\n- Details about the changes...\n")
	ok, err := docs.HasHeading(src, "Update for src/api/users.py")
	if err != nil || !ok {
		t.Fatalf("expected heading present, got %v %v", ok, err)
	}
	ok, err = docs.HasHeading(src, "Update for src/api/users")
	if err != nil || ok {
		t.Fatalf("expected partial text to not match, got %v %v", ok, err)
	}
}
