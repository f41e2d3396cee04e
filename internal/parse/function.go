package parse

import (
	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/source"
)

// pBlockBody parses the body attached to an introducer keyword or
// symbol (`do`, `else`, `=>`, `=`): either a single expression on the
// same line, or, when the line ends right after the introducer, a
// `block` of one-or-more expressions at a shared indent column deeper
// than outerColumn (spec.md §4.1's "block — sequence of expressions at
// the same indent level"). A block statement may also be a value
// declaration (`name = expression`), a sequential let-binding. A block
// of exactly one expression returns that expression unwrapped,
// matching the codegen singleton rule.
func pBlockBody(p *Parser, ctx context, outerColumn int, in source.Span) (ast.Expression, source.Span, bool) {
	sameLine := skipInlineSpace(in)
	if hasInlineContent(sameLine) {
		return pExpression(p, ctx.disallowNewlinesInExpressions(), sameLine)
	}

	lookahead := skipTrivia(newContext().allowNewlinesInExpressions(), in)
	if lookahead.IsEmpty() {
		p.fail(in.Pos(), "expected expression")
		return nil, in, false
	}
	column := lookahead.Pos().Column
	if column <= outerColumn {
		p.fail(lookahead.Pos(), "expected an indented block")
		return nil, in, false
	}

	var exprs []ast.Expression
	rest := in
	for {
		next := skipTrivia(newContext().allowNewlinesInExpressions(), rest)
		if next.IsEmpty() || next.Pos().Column != column {
			break
		}
		var expr ast.Expression
		var after source.Span
		if decl, declRest, isDecl := pVariableDeclaration(p, next); isDecl {
			expr, after = decl, declRest
		} else {
			var ok bool
			expr, after, ok = pExpression(p, ctx.incrementIndentation().disallowNewlinesInExpressions(), next)
			if !ok {
				return nil, in, false
			}
		}
		exprs = append(exprs, expr)
		rest = after
	}
	if len(exprs) == 0 {
		p.fail(lookahead.Pos(), "expected at least one expression in block")
		return nil, in, false
	}
	if len(exprs) == 1 {
		return exprs[0], rest, true
	}
	span := in.Take(in.Len() - rest.Len())
	return ast.NewBlockExpr(span, exprs), rest, true
}

// hasInlineContent reports whether in has non-whitespace,
// non-comment, non-newline content before its next line ending.
func hasInlineContent(in source.Span) bool {
	if in.IsEmpty() {
		return false
	}
	if in.Text[0] == '\n' || in.Text[0] == '\r' {
		return false
	}
	if in.HasPrefix("--") {
		return false
	}
	return true
}

// pParam parses one function parameter: `name [: TypeExpr]`.
func pParam(p *Parser, ctx context, in source.Span) (ast.Param, source.Span, bool) {
	name, _, rest, ok := pRawIdentifier(p, in)
	if !ok {
		return ast.Param{}, in, false
	}
	var annotation ast.TypeExpr
	afterName := skipTrivia(ctx, rest)
	if afterName.HasPrefix(":") {
		rest = skipTrivia(ctx, afterName.Slice(1, afterName.Len()))
		ann, next, ok := pTypeExpression(p, ctx, rest)
		if !ok {
			return ast.Param{}, in, false
		}
		annotation = ann
		rest = next
	}
	span := in.Take(in.Len() - rest.Len())
	return ast.Param{Name: name, Annotation: annotation, Span: span}, rest, true
}

// pFunction parses `(params) => expression`, params comma-separated.
func pFunction(p *Parser, ctx context, in source.Span) (*ast.FunctionExpr, source.Span, bool) {
	rest, ok := expectLiteral(p, in, "(")
	if !ok {
		return nil, in, false
	}
	inner := bracketedContext(ctx)
	var params []ast.Param
	rest = skipTrivia(inner, rest)
	for {
		rest = skipTrivia(inner, rest)
		if rest.HasPrefix(")") {
			break
		}
		param, next, ok := pParam(p, inner, rest)
		if !ok {
			return nil, in, false
		}
		params = append(params, param)
		rest = skipTrivia(inner, next)
		if rest.HasPrefix(",") {
			rest = skipTrivia(inner, rest.Slice(1, rest.Len()))
			continue
		}
		break
	}
	rest, ok = expectLiteral(p, rest, ")")
	if !ok {
		return nil, in, false
	}
	rest = skipInlineSpace(rest)
	rest, ok = expectLiteral(p, rest, "=>")
	if !ok {
		return nil, in, false
	}
	body, rest, ok := pBlockBody(p, ctx, in.Pos().Column, rest)
	if !ok {
		return nil, in, false
	}
	span := in.Take(in.Len() - rest.Len())
	return ast.NewFunctionExpr(span, params, body), rest, true
}
