package apidiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeType classifies an element-level change.
type ChangeType string

const (
	Added    ChangeType = "added"
	Removed  ChangeType = "removed"
	Modified ChangeType = "modified"
)

// Change is one element-level difference between two versions of a file.
type Change struct {
	Type        ChangeType
	Name        string
	Description string
}

// Compare reports added elements (after order), then removed (before order),
// then modified (after order). A modification is a kind change, else a signature
// change, else a doc change.
func Compare(before, after []Element) []Change {
	oldByName := byName(before)
	newByName := byName(after)
	var out []Change

	for _, e := range after {
		if _, ok := oldByName[e.Name]; !ok {
			desc := "New " + e.Kind
			if e.Signature != "" {
				desc += " with signature: " + e.Signature
			}
			out = append(out, Change{Type: Added, Name: e.Name, Description: desc})
		}
	}
	for _, e := range before {
		if _, ok := newByName[e.Name]; !ok {
			out = append(out, Change{Type: Removed, Name: e.Name, Description: "Removed " + e.Kind})
		}
	}
	for _, n := range after {
		o, ok := oldByName[n.Name]
		if !ok {
			continue
		}
		switch {
		case o.Kind != n.Kind:
			out = append(out, Change{Type: Modified, Name: n.Name, Description: fmt.Sprintf("Changed from %s to %s", o.Kind, n.Kind)})
		case o.Signature != n.Signature:
			out = append(out, Change{Type: Modified, Name: n.Name, Description: fmt.Sprintf("Signature changed from %s to %s", o.Signature, n.Signature)})
		case o.Doc != n.Doc:
			out = append(out, Change{Type: Modified, Name: n.Name, Description: "Docstring updated"})
		}
	}
	return out
}

func byName(elems []Element) map[string]Element {
	m := make(map[string]Element, len(elems))
	for _, e := range elems {
		m[e.Name] = e
	}
	return m
}

// Stats counts changed lines between two versions.
type Stats struct {
	Inserted int
	Deleted  int
}

// LineStats runs a line-mode diff between before and after.
func LineStats(before, after string) Stats {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var s Stats
	for _, d := range diffs {
		n := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Inserted += n
		case diffmatchpatch.DiffDelete:
			s.Deleted += n
		}
	}
	return s
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

var changeTitles = map[ChangeType]string{Added: "Added", Removed: "Removed", Modified: "Modified"}

// Describe renders changes and stats as note bullets.
func Describe(changes []Change, stats Stats) []string {
	out := make([]string, 0, len(changes)+1)
	for _, c := range changes {
		out = append(out, fmt.Sprintf("%s: %s (%s)", changeTitles[c.Type], c.Name, c.Description))
	}
	if stats.Inserted > 0 || stats.Deleted > 0 {
		out = append(out, fmt.Sprintf("Lines: +%d -%d", stats.Inserted, stats.Deleted))
	}
	return out
}

// Summarize extracts elements from both versions of filename and describes the
// difference. When the base version is missing (hasOld false) every current
// element counts as added.
func Summarize(filename string, old []byte, hasOld bool, current []byte) ([]string, error) {
	newElems, err := Extract(filename, current)
	if err != nil {
		return nil, err
	}
	var oldElems []Element
	if hasOld {
		oldElems, err = Extract(filename, old)
		if err != nil {
			return nil, err
		}
	}
	return Describe(Compare(oldElems, newElems), LineStats(string(old), string(current))), nil
}
