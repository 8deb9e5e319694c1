package docs

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Headings returns the raw text of every heading in a markdown document, in
// document order. Headings inside code blocks are not reported.
func Headings(source []byte) ([]string, error) {
	source = bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var headings []string
	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		lines := heading.Lines()
		parts := make([]string, 0, lines.Len())
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			parts = append(parts, strings.TrimSpace(string(line.Value(source))))
		}
		headings = append(headings, strings.Join(parts, " "))
		return ast.WalkSkipChildren, nil
	}
	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}
	return headings, nil
}

// HasHeading reports whether the document contains a heading whose text is exactly want.
func HasHeading(source []byte, want string) (bool, error) {
	headings, err := Headings(source)
	if err != nil {
		return false, err
	}
	want = strings.TrimSpace(want)
	for _, h := range headings {
		if h == want {
			return true, nil
		}
	}
	return false, nil
}
