package apidiff

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"strings"
)

type goExtractor struct{}

func (goExtractor) CanExtract(filename string) bool {
	return hasExt(filename, ".go") && !strings.HasSuffix(filename, "_test.go")
}

// Extract reports exported functions, methods and types.
func (goExtractor) Extract(filename string, src []byte) ([]Element, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse go source: %w", err)
	}

	var out []Element
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if !d.Name.IsExported() {
				continue
			}
			e := Element{Name: d.Name.Name, Kind: KindFunction, Doc: strings.TrimSpace(d.Doc.Text())}
			if d.Recv != nil && len(d.Recv.List) > 0 {
				recv := receiverName(d.Recv.List[0].Type)
				if !ast.IsExported(recv) {
					continue
				}
				e.Name = recv + "." + d.Name.Name
				e.Kind = KindMethod
			}
			e.Signature = strings.TrimPrefix(render(fset, d.Type), "func")
			out = append(out, e)
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || !ts.Name.IsExported() {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}
				out = append(out, Element{
					Name:      ts.Name.Name,
					Kind:      KindType,
					Signature: render(fset, ts.Type),
					Doc:       strings.TrimSpace(doc.Text()),
				})
			}
		}
	}
	return out, nil
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	}
	return ""
}

func render(fset *token.FileSet, node any) string {
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, node); err != nil {
		return ""
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}
