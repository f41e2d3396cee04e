package parse

import (
	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/source"
)

// pVariableDeclaration parses `[export] identifier [: TypeExpr] =
// expression`.
func pVariableDeclaration(p *Parser, in source.Span) (*ast.ValueDecl, source.Span, bool) {
	start := in
	rest := in
	exported := false
	if after, ok := expectKeyword(p, rest, "export"); ok {
		exported = true
		rest = skipInlineSpace(after)
	}
	name, _, rest, ok := pRawIdentifier(p, rest)
	if !ok {
		return nil, in, false
	}
	ctx := newContext()
	var annotation ast.TypeExpr
	afterName := skipTrivia(ctx, rest)
	if afterName.HasPrefix(":") {
		rest = skipTrivia(ctx, afterName.Slice(1, afterName.Len()))
		ann, next, ok := pTypeExpression(p, ctx, rest)
		if !ok {
			return nil, in, false
		}
		annotation = ann
		rest = next
	}
	rest = skipTrivia(ctx, rest)
	rest, ok = expectLiteral(p, rest, "=")
	if !ok {
		return nil, in, false
	}
	value, rest, ok := pBlockBody(p, ctx, start.Pos().Column, rest)
	if !ok {
		return nil, in, false
	}
	span := start.Take(start.Len() - rest.Len())
	return ast.NewValueDecl(span, name, annotation, value, exported), rest, true
}

// pTypeDeclaration parses `TypeIdent = type_expression`.
func pTypeDeclaration(p *Parser, in source.Span) (*ast.TypeDecl, source.Span, bool) {
	start := in
	name, _, rest, ok := pTypeIdentifier(p, in)
	if !ok {
		return nil, in, false
	}
	ctx := newContext()
	rest = skipTrivia(ctx, rest)
	rest, ok = expectLiteral(p, rest, "=")
	if !ok {
		return nil, in, false
	}
	rest = skipTrivia(ctx.allowNewlinesInExpressions(), rest)
	typeExpr, rest, ok := pTypeExpression(p, ctx, rest)
	if !ok {
		return nil, in, false
	}
	span := start.Take(start.Len() - rest.Len())
	return &ast.TypeDecl{Name: name, Type: typeExpr, Sp: span}, rest, true
}

// pImport parses `import ident (, ident)* from "path"`.
func pImport(p *Parser, in source.Span) (*ast.ImportNode, source.Span, bool) {
	start := in
	rest, ok := expectKeyword(p, in, "import")
	if !ok {
		return nil, in, false
	}
	rest = skipInlineSpace(rest)
	ctx := newContext()
	var idents []ast.ImportedIdentifier
	for {
		if r, _ := rest.FirstRune(); isUpperStart(r) {
			name, span, next, ok := pTypeIdentifier(p, rest)
			if !ok {
				return nil, in, false
			}
			idents = append(idents, ast.ImportedIdentifier{Name: name, IsType: true, Span: span})
			rest = next
		} else {
			name, span, next, ok := pRawIdentifier(p, rest)
			if !ok {
				return nil, in, false
			}
			idents = append(idents, ast.ImportedIdentifier{Name: name, IsType: false, Span: span})
			rest = next
		}
		after := skipTrivia(ctx, rest)
		if after.HasPrefix(",") {
			rest = skipTrivia(ctx, after.Slice(1, after.Len()))
			continue
		}
		rest = after
		break
	}
	rest, ok = expectKeyword(p, rest, "from")
	if !ok {
		return nil, in, false
	}
	rest = skipInlineSpace(rest)
	pathExpr, rest, ok := pStringLiteral(p, rest)
	if !ok {
		return nil, in, false
	}
	span := start.Take(start.Len() - rest.Len())
	return &ast.ImportNode{Path: pathExpr.Value, Identifiers: idents, Sp: span}, rest, true
}

// pDocument parses optional imports, then a top-level sequence of type
// declarations and variable declarations, terminated by end-of-input.
func pDocument(p *Parser, in source.Span) (*ast.Document, source.Span, bool) {
	start := in
	ctx := newContext().allowNewlinesInExpressions()
	rest := skipTrivia(ctx, in)

	doc := &ast.Document{}
	for {
		lookahead := skipTrivia(ctx, rest)
		if !lookahead.HasPrefix("import") || followsIdentTail(lookahead, 6) {
			break
		}
		imp, next, ok := pImport(p, lookahead)
		if !ok {
			return nil, in, false
		}
		doc.Imports = append(doc.Imports, imp)
		rest = next
	}

	for {
		lookahead := skipTrivia(ctx, rest)
		if lookahead.IsEmpty() {
			rest = lookahead
			break
		}
		r, _ := lookahead.FirstRune()
		switch {
		case isUpperStart(r):
			decl, next, ok := pTypeDeclaration(p, lookahead)
			if !ok {
				return nil, in, false
			}
			doc.TypeDecls = append(doc.TypeDecls, decl)
			rest = next
		case isLowerStart(r):
			decl, next, ok := pVariableDeclaration(p, lookahead)
			if !ok {
				return nil, in, false
			}
			doc.Values = append(doc.Values, decl)
			rest = next
		default:
			p.fail(lookahead.Pos(), "expected a type declaration or value declaration")
			return nil, in, false
		}
	}

	doc.Sp = start.Take(start.Len() - rest.Len())
	return doc, rest, true
}
