package parse

import (
	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/source"
)

// pTypeExpression is `type_identifier ∪ list_type ∪ tag_type ∪
// record_type ∪ function_type`.
func pTypeExpression(p *Parser, ctx context, in source.Span) (ast.TypeExpr, source.Span, bool) {
	switch {
	case in.HasPrefix("List("):
		return pListType(p, ctx, in)
	case in.HasPrefix("{"):
		return pRecordType(p, ctx, in)
	case in.HasPrefix("#"):
		return pTagType(p, ctx, in)
	case in.HasPrefix("("):
		return pFunctionType(p, ctx, in)
	default:
		name, span, rest, ok := pTypeIdentifier(p, in)
		if !ok {
			return nil, in, false
		}
		return ast.NewTypeIdentifierExpr(span, name), rest, true
	}
}

func pListType(p *Parser, ctx context, in source.Span) (*ast.ListTypeExpr, source.Span, bool) {
	rest, ok := expectLiteral(p, in, "List(")
	if !ok {
		return nil, in, false
	}
	inner := bracketedContext(ctx)
	rest = skipTrivia(inner, rest)
	elem, rest, ok := pTypeExpression(p, inner, rest)
	if !ok {
		return nil, in, false
	}
	rest = skipTrivia(inner, rest)
	rest, ok = expectLiteral(p, rest, ")")
	if !ok {
		return nil, in, false
	}
	span := in.Take(in.Len() - rest.Len())
	return ast.NewListTypeExpr(span, elem), rest, true
}

func pRecordType(p *Parser, ctx context, in source.Span) (*ast.RecordTypeExpr, source.Span, bool) {
	rest, ok := expectLiteral(p, in, "{")
	if !ok {
		return nil, in, false
	}
	inner := bracketedContext(ctx)
	var fields []ast.RecordTypeField
	rest = skipTrivia(inner, rest)
	for {
		rest = skipTrivia(inner, rest)
		if rest.HasPrefix("}") {
			break
		}
		start := rest
		name, _, next, ok := pRawIdentifier(p, rest)
		if !ok {
			return nil, in, false
		}
		next = skipTrivia(inner, next)
		next, ok = expectLiteral(p, next, ":")
		if !ok {
			return nil, in, false
		}
		next = skipTrivia(inner, next)
		fieldType, next, ok := pTypeExpression(p, inner, next)
		if !ok {
			return nil, in, false
		}
		fields = append(fields, ast.RecordTypeField{Name: name, Type: fieldType, Span: start.Take(start.Len() - next.Len())})
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
	span := in.Take(in.Len() - rest.Len())
	return ast.NewRecordTypeExpr(span, fields), rest, true
}

// pTagType parses one `#name(T1, T2, ...)` (or payload-less `#name`)
// variant, or a `|`-joined union of them.
func pTagType(p *Parser, ctx context, in source.Span) (*ast.TagTypeExpr, source.Span, bool) {
	var variants []ast.TagTypeVariant
	rest := in
	for {
		start := rest
		name, _, next, ok := pTagIdentifier(p, rest)
		if !ok {
			if len(variants) == 0 {
				return nil, in, false
			}
			break
		}
		var payload []ast.TypeExpr
		if next.HasPrefix("(") {
			next, ok = expectLiteral(p, next, "(")
			if !ok {
				return nil, in, false
			}
			inner := bracketedContext(ctx)
			next = skipTrivia(inner, next)
			for {
				next = skipTrivia(inner, next)
				if next.HasPrefix(")") {
					break
				}
				t, n2, ok := pTypeExpression(p, inner, next)
				if !ok {
					return nil, in, false
				}
				payload = append(payload, t)
				next = skipTrivia(inner, n2)
				if next.HasPrefix(",") {
					next = skipTrivia(inner, next.Slice(1, next.Len()))
					continue
				}
				break
			}
			next, ok = expectLiteral(p, next, ")")
			if !ok {
				return nil, in, false
			}
		}
		variants = append(variants, ast.TagTypeVariant{Name: name, Payload: payload, Span: start.Take(start.Len() - next.Len())})
		rest = next
		lookahead := skipTrivia(ctx, rest)
		if lookahead.HasPrefix("|") {
			rest = skipTrivia(ctx, lookahead.Slice(1, lookahead.Len()))
			continue
		}
		break
	}
	span := in.Take(in.Len() - rest.Len())
	return ast.NewTagTypeExpr(span, variants), rest, true
}

func pFunctionType(p *Parser, ctx context, in source.Span) (*ast.FunctionTypeExpr, source.Span, bool) {
	rest, ok := expectLiteral(p, in, "(")
	if !ok {
		return nil, in, false
	}
	inner := bracketedContext(ctx)
	var args []ast.TypeExpr
	rest = skipTrivia(inner, rest)
	for {
		rest = skipTrivia(inner, rest)
		if rest.HasPrefix(")") {
			break
		}
		arg, next, ok := pTypeExpression(p, inner, rest)
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
	rest = skipTrivia(inner, rest)
	rest, ok = expectLiteral(p, rest, "->")
	if !ok {
		return nil, in, false
	}
	rest = skipTrivia(inner, rest)
	ret, rest, ok := pTypeExpression(p, inner, rest)
	if !ok {
		return nil, in, false
	}
	span := in.Take(in.Len() - rest.Len())
	return ast.NewFunctionTypeExpr(span, args, ret), rest, true
}
