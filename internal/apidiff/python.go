package apidiff

import (
	"regexp"
	"strings"
)

type pythonExtractor struct{}

var (
	pyDefRe   = regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
	pyClassRe = regexp.MustCompile(`^\s*class\s+([A-Za-z_]\w*)`)
)

// maxSignatureLines bounds how far a def header may span.
const maxSignatureLines = 30

func (pythonExtractor) CanExtract(filename string) bool {
	return hasExt(filename, ".py", ".pyi")
}

// Extract scans def and class headers line by line. Later definitions with the
// same name replace earlier ones but keep the earlier position.
func (pythonExtractor) Extract(_ string, src []byte) ([]Element, error) {
	lines := strings.Split(strings.ReplaceAll(string(src), "\r\n", "\n"), "\n")
	var out []Element
	index := map[string]int{}
	add := func(e Element) {
		if i, ok := index[e.Name]; ok {
			out[i] = e
			return
		}
		index[e.Name] = len(out)
		out = append(out, e)
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if m := pyClassRe.FindStringSubmatch(line); m != nil {
			end := headerEnd(lines, i)
			add(Element{Name: m[1], Kind: KindClass, Doc: pyDocstring(lines, end+1)})
			i = end
			continue
		}
		m := pyDefRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		end := headerEnd(lines, i)
		header := strings.Join(trimAll(lines[i:end+1]), " ")
		add(Element{
			Name:      m[1],
			Kind:      KindFunction,
			Signature: pySignature(header),
			Doc:       pyDocstring(lines, end+1),
		})
		i = end
	}
	return out, nil
}

// headerEnd returns the index of the line closing a def/class header: the
// first line where brackets opened since start are balanced again.
func headerEnd(lines []string, start int) int {
	depth := 0
	for i := start; i < len(lines) && i < start+maxSignatureLines; i++ {
		scanCode(lines[i], func(_ int, c byte) bool {
			switch c {
			case '(', '[':
				depth++
			case ')', ']':
				depth--
			}
			return true
		})
		if depth <= 0 {
			return i
		}
	}
	return start
}

// scanCode calls fn for each byte of s that lies outside string literals,
// stopping when fn returns false. It returns the offset of a trailing
// comment, or len(s) when there is none.
func scanCode(s string, fn func(i int, c byte) bool) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return i
		case fn != nil && !fn(i, c):
			return len(s)
		}
	}
	return len(s)
}

func stripComment(line string) string {
	return line[:scanCode(line, nil)]
}

func trimAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(stripComment(l))
	}
	return out
}

// pySignature renders "(name: type, ...) -> ret", using Any for missing
// annotations. Only positional-or-keyword parameters are listed: anything
// before "/", the star parameters, and keyword-only parameters after them
// are left out.
func pySignature(header string) string {
	open := strings.Index(header, "(")
	if open < 0 {
		return "() -> Any"
	}
	depth, closing := 0, -1
	scanCode(header[open:], func(i int, c byte) bool {
		switch c {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth == 0 && c == ')' {
				closing = open + i
				return false
			}
		}
		return true
	})
	if closing < 0 {
		return "() -> Any"
	}

	var params []string
	keywordOnly := false
	for _, p := range splitTopLevel(header[open+1 : closing]) {
		p = strings.TrimSpace(p)
		switch {
		case p == "":
			continue
		case p == "/":
			params = params[:0]
			continue
		case strings.HasPrefix(p, "**"):
			continue
		case strings.HasPrefix(p, "*"):
			keywordOnly = true
			continue
		case keywordOnly:
			continue
		}
		if eq := topLevelIndex(p, '='); eq >= 0 {
			p = strings.TrimSpace(p[:eq])
		}
		name, ann := p, "Any"
		if colon := topLevelIndex(p, ':'); colon >= 0 {
			name = strings.TrimSpace(p[:colon])
			ann = strings.TrimSpace(p[colon+1:])
		}
		params = append(params, name+": "+ann)
	}

	ret := "Any"
	rest := header[closing+1:]
	if arrow := strings.Index(rest, "->"); arrow >= 0 {
		ret = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest[arrow+2:]), ":"))
	}
	return "(" + strings.Join(params, ", ") + ") -> " + ret
}

func splitTopLevel(s string) []string {
	var parts []string
	depth, last := 0, 0
	scanCode(s, func(i int, c byte) bool {
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
		return true
	})
	return append(parts, s[last:])
}

func topLevelIndex(s string, c byte) int {
	depth, at := 0, -1
	scanCode(s, func(i int, b byte) bool {
		switch b {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case c:
			if depth == 0 {
				at = i
				return false
			}
		}
		return true
	})
	return at
}

// pyDocstring returns the docstring starting at the first non-blank line at or
// after start, with each line trimmed.
func pyDocstring(lines []string, start int) string {
	i := start
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i >= len(lines) {
		return ""
	}
	first := strings.TrimSpace(lines[i])
	first = strings.TrimLeft(first, "rRuUbB")
	var quote string
	switch {
	case strings.HasPrefix(first, `"""`):
		quote = `"""`
	case strings.HasPrefix(first, `'''`):
		quote = `'''`
	default:
		return ""
	}
	body := first[len(quote):]
	if end := strings.Index(body, quote); end >= 0 {
		return strings.TrimSpace(body[:end])
	}
	doc := []string{strings.TrimSpace(body)}
	for j := i + 1; j < len(lines); j++ {
		l := strings.TrimSpace(lines[j])
		if end := strings.Index(l, quote); end >= 0 {
			doc = append(doc, strings.TrimSpace(l[:end]))
			break
		}
		doc = append(doc, l)
	}
	return strings.TrimSpace(strings.Join(doc, "\n"))
}
