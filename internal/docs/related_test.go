package docs_test

import (
	"testing"

	"github.com/KaramelBytes/docbump-cli/internal/docs"
)

func TestFindRelated(t *testing.T) {
	cases := []struct {
		name    string
		changed string
		docs    []string
		want    string
		ok      bool
	}{
		{
			name:    "same directory",
			changed: "src/api/users/handler.ext",
			docs:    []string{"docs/guide.md", "src/api/users/README.md"},
			want:    "src/api/users/README.md",
			ok:      true,
		},
		{
			name:    "two levels up",
			changed: "src/api/users/v2/handler.ext",
			docs:    []string{"src/api/README.md"},
			want:    "src/api/README.md",
			ok:      true,
		},
		{
			name:    "nearest wins over root",
			changed: "src/api/users/handler.ext",
			docs:    []string{"README.md", "src/api/README.md"},
			want:    "src/api/README.md",
			ok:      true,
		},
		{
			name:    "first in list order at same level",
			changed: "src/api/users.py",
			docs:    []string{"src/api/README.md", "src/api/CHANGES.md", "src/api/README.md"},
			want:    "src/api/README.md",
			ok:      true,
		},
		{
			name:    "falls back to top directory",
			changed: "src/api/users.py",
			docs:    []string{"docs/guide.md", "./README.md"},
			want:    "./README.md",
			ok:      true,
		},
		{
			name:    "no ancestor has a doc",
			changed: "lib/unrelated/file.ext",
			docs:    []string{"src/api/README.md", "docs/guide.md"},
			ok:      false,
		},
		{
			name:    "sibling prefix is not an ancestor",
			changed: "src/apix/file.ext",
			docs:    []string{"src/api/README.md"},
			ok:      false,
		},
		{
			name:    "absolute paths walk to slash",
			changed: "/repo/src/api/users.py",
			docs:    []string{"/repo/README.md"},
			want:    "/repo/README.md",
			ok:      true,
		},
		{
			name:    "empty doc list",
			changed: "src/api/users.py",
			ok:      false,
		},
	}
	for _, tc := range cases {
		got, ok := docs.FindRelated(tc.changed, tc.docs)
		if ok != tc.ok || got != tc.want {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}
