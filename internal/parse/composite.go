package parse

import (
	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/source"
)

// bracketedContext is the context used inside any bracketed or
// parenthesized construct: list, record, record-update, tag payload,
// and parentheses all always allow newlines, regardless of the
// caller's context (spec.md §4.1).
func bracketedContext(ctx context) context {
	return ctx.incrementIndentation().allowNewlinesInExpressions()
}

// pList parses `[` items `]`.
func pList(p *Parser, ctx context, in source.Span) (*ast.ListExpr, source.Span, bool) {
	start := in
	rest, ok := expectLiteral(p, in, "[")
	if !ok {
		return nil, in, false
	}
	inner := bracketedContext(ctx)
	var items []ast.Expression
	rest = skipTrivia(inner, rest)
	for {
		rest = skipTrivia(inner, rest)
		if rest.HasPrefix("]") {
			break
		}
		item, next, ok := pExpression(p, inner, rest)
		if !ok {
			return nil, in, false
		}
		items = append(items, item)
		rest = skipTrivia(inner, next)
		if rest.HasPrefix(",") {
			rest = skipTrivia(inner, rest.Slice(1, rest.Len()))
			continue
		}
		break
	}
	rest, ok = expectLiteral(p, rest, "]")
	if !ok {
		return nil, in, false
	}
	span := start.Take(start.Len() - rest.Len())
	return ast.NewListExpr(span, items), rest, true
}

// pFieldBinding parses `name : expression` within a record or
// record-update literal.
func pFieldBinding(p *Parser, ctx context, in source.Span) (ast.RecordField, source.Span, bool) {
	name, _, rest, ok := pRawIdentifier(p, in)
	if !ok {
		return ast.RecordField{}, in, false
	}
	rest = skipTrivia(ctx, rest)
	rest, ok = expectLiteral(p, rest, ":")
	if !ok {
		return ast.RecordField{}, in, false
	}
	rest = skipTrivia(ctx, rest)
	value, rest, ok := pExpression(p, ctx, rest)
	if !ok {
		return ast.RecordField{}, in, false
	}
	full := in.Take(in.Len() - rest.Len())
	return ast.RecordField{Name: name, Value: value, Span: full}, rest, true
}

// pRecordOrUpdate parses `{` name `:` expr (`,` …)? `}` or
// `{` identifier `|` name `:` expr (`,` …)? `}`.
func pRecordOrUpdate(p *Parser, ctx context, in source.Span) (ast.Expression, source.Span, bool) {
	start := in
	rest, ok := expectLiteral(p, in, "{")
	if !ok {
		return nil, in, false
	}
	inner := bracketedContext(ctx)
	rest = skipTrivia(inner, rest)

	// Distinguish record-update `{ident | ...}` from a plain record by
	// trial-parsing an identifier followed by `|`.
	target := ""
	isUpdate := false
	if name, _, afterIdent, ok := pRawIdentifier(p, rest); ok {
		afterIdent2 := skipTrivia(inner, afterIdent)
		if afterIdent2.HasPrefix("|") {
			target = name
			isUpdate = true
			rest = skipTrivia(inner, afterIdent2.Slice(1, afterIdent2.Len()))
		}
	}

	var fields []ast.RecordField
	seen := make(map[string]bool)
	for {
		rest = skipTrivia(inner, rest)
		if rest.HasPrefix("}") {
			break
		}
		field, next, ok := pFieldBinding(p, inner, rest)
		if !ok {
			return nil, in, false
		}
		if seen[field.Name] {
			p.fail(rest.Pos(), "duplicate record field '"+field.Name+"'")
			return nil, in, false
		}
		seen[field.Name] = true
		fields = append(fields, field)
		rest = skipTrivia(inner, next)
		if rest.HasPrefix(",") {
			rest = skipTrivia(inner, rest.Slice(1, rest.Len()))
			continue
		}
		break
	}
	rest, ok = expectLiteral(p, rest, "}")
	if !ok {
		return nil, in, false
	}
	span := start.Take(start.Len() - rest.Len())
	if isUpdate {
		return ast.NewRecordUpdateExpr(span, target, fields), rest, true
	}
	return ast.NewRecordExpr(span, fields), rest, true
}

// pTag parses `#name` optionally followed (no intervening whitespace)
// by `(args)`.
func pTag(p *Parser, ctx context, in source.Span) (*ast.TagExpr, source.Span, bool) {
	name, _, rest, ok := pTagIdentifier(p, in)
	if !ok {
		return nil, in, false
	}
	if !rest.HasPrefix("(") {
		span := in.Take(in.Len() - rest.Len())
		return ast.NewTagExpr(span, name, nil), rest, true
	}
	rest, ok = expectLiteral(p, rest, "(")
	if !ok {
		return nil, in, false
	}
	inner := bracketedContext(ctx)
	var args []ast.Expression
	rest = skipTrivia(inner, rest)
	for {
		rest = skipTrivia(inner, rest)
		if rest.HasPrefix(")") {
			break
		}
		arg, next, ok := pExpression(p, inner, rest)
		if !ok {
			return nil, in, false
		}
		args = append(args, arg)
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
	span := in.Take(in.Len() - rest.Len())
	return ast.NewTagExpr(span, name, args), rest, true
}

// pParentheses parses `(` expr `)`, always allowing newlines inside.
func pParentheses(p *Parser, ctx context, in source.Span) (ast.Expression, source.Span, bool) {
	rest, ok := expectLiteral(p, in, "(")
	if !ok {
		return nil, in, false
	}
	inner := bracketedContext(ctx)
	rest = skipTrivia(inner, rest)
	expr, rest, ok := pExpression(p, inner, rest)
	if !ok {
		return nil, in, false
	}
	rest = skipTrivia(inner, rest)
	rest, ok = expectLiteral(p, rest, ")")
	if !ok {
		return nil, in, false
	}
	return expr, rest, true
}
