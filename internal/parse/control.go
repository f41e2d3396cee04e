package parse

import (
	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/source"
)

// pIfStatement parses `if` cond `do` then (`else` else)?.
func pIfStatement(p *Parser, ctx context, in source.Span) (*ast.IfExpr, source.Span, bool) {
	rest, ok := expectKeyword(p, in, "if")
	if !ok {
		return nil, in, false
	}
	rest = requireInlineSpace(p, rest)
	cond, rest, ok := pExpression(p, ctx, rest)
	if !ok {
		return nil, in, false
	}
	rest = skipTrivia(ctx.disallowNewlinesInExpressions(), rest)
	rest, ok = expectKeyword(p, rest, "do")
	if !ok {
		return nil, in, false
	}
	then, rest, ok := pBlockBody(p, ctx, in.Pos().Column, rest)
	if !ok {
		return nil, in, false
	}

	var els ast.Expression
	lookahead := skipTrivia(ctx.allowNewlinesInExpressions(), rest)
	if afterElse, ok := expectKeyword(p, lookahead, "else"); ok && sameStatementColumn(in, lookahead) {
		body, next, ok := pBlockBody(p, ctx, in.Pos().Column, afterElse)
		if !ok {
			return nil, in, false
		}
		els = body
		rest = next
	}

	span := in.Take(in.Len() - rest.Len())
	return ast.NewIfExpr(span, cond, then, els), rest, true
}

// sameStatementColumn reports whether lookahead begins at or to the
// right of the column where the statement at start began, so an `else`
// on the same line or on a following line at least as indented as the
// `if` is taken as this `if`'s else branch, while a dedented `else` is
// left to close an outer construct instead.
func sameStatementColumn(start, lookahead source.Span) bool {
	return lookahead.Pos().Column >= start.Pos().Column
}

// pWhenExpr parses `when scrutinee is` one-or-more cases, each
// `(#tag arg-names | _) => expression`.
func pWhenExpr(p *Parser, ctx context, in source.Span) (*ast.WhenExpr, source.Span, bool) {
	rest, ok := expectKeyword(p, in, "when")
	if !ok {
		return nil, in, false
	}
	rest = requireInlineSpace(p, rest)
	scrutinee, rest, ok := pExpression(p, ctx, rest)
	if !ok {
		return nil, in, false
	}
	rest = skipTrivia(ctx.disallowNewlinesInExpressions(), rest)
	rest, ok = expectKeyword(p, rest, "is")
	if !ok {
		return nil, in, false
	}

	column := -1
	var cases []ast.WhenCase
	for {
		lookahead := skipTrivia(newContext().allowNewlinesInExpressions(), rest)
		if lookahead.IsEmpty() {
			break
		}
		col := lookahead.Pos().Column
		if column == -1 {
			column = col
		} else if col != column {
			break
		}
		caseNode, next, ok := pWhenCase(p, ctx, lookahead)
		if !ok {
			break
		}
		cases = append(cases, caseNode)
		rest = next
	}
	if len(cases) == 0 {
		p.fail(rest.Pos(), "expected at least one when-case")
		return nil, in, false
	}
	span := in.Take(in.Len() - rest.Len())
	return ast.NewWhenExpr(span, scrutinee, cases), rest, true
}

func pWhenCase(p *Parser, ctx context, in source.Span) (ast.WhenCase, source.Span, bool) {
	start := in
	isDefault := false
	tag := ""
	var args []string
	rest := in
	if rest.HasPrefix("_") && !followsIdentTail(rest, 1) {
		isDefault = true
		rest = rest.Slice(1, rest.Len())
	} else {
		name, _, r, ok := pTagIdentifier(p, rest)
		if !ok {
			return ast.WhenCase{}, in, false
		}
		tag = name
		rest = r
		for {
			afterWS := skipInlineSpace(rest)
			if afterWS.IsEmpty() {
				break
			}
			r, _ := afterWS.FirstRune()
			if !isLowerStart(r) {
				break
			}
			argName, _, next, ok := pRawIdentifier(p, afterWS)
			if !ok {
				break
			}
			args = append(args, argName)
			rest = next
		}
	}
	rest = skipInlineSpace(rest)
	rest, ok := expectLiteral(p, rest, "=>")
	if !ok {
		return ast.WhenCase{}, in, false
	}
	body, rest, ok := pBlockBody(p, ctx, start.Pos().Column, rest)
	if !ok {
		return ast.WhenCase{}, in, false
	}
	span := start.Take(start.Len() - rest.Len())
	return ast.WhenCase{Tag: tag, IsDefault: isDefault, Args: args, Body: body, Span: span}, rest, true
}

// pExpression is `binary_operator_expression ∪ if_statement`, extended
// to admit `when` wherever an expression is expected: spec.md §4.1
// places `when` between `function`/`block` and `variable_declaration`
// in its precedence listing without naming a use site, but a `when`
// that could only appear at statement top level would be useless as
// an expression language construct, so it is folded in here alongside
// `if`.
func pExpression(p *Parser, ctx context, in source.Span) (ast.Expression, source.Span, bool) {
	if in.HasPrefix("if") && !followsIdentTail(in, 2) {
		return pIfStatement(p, ctx, in)
	}
	if in.HasPrefix("when") && !followsIdentTail(in, 4) {
		return pWhenExpr(p, ctx, in)
	}
	return pBinaryOperatorExpression(p, ctx, in)
}

// expectKeyword consumes a keyword literal ensuring it is not merely
// a prefix of a longer identifier.
func expectKeyword(p *Parser, in source.Span, kw string) (source.Span, bool) {
	if in.HasPrefix(kw) && !followsIdentTail(in, len(kw)) {
		return in.Slice(len(kw), in.Len()), true
	}
	p.fail(in.Pos(), "expected '"+kw+"'")
	return in, false
}

func requireInlineSpace(p *Parser, in source.Span) source.Span {
	return skipInlineSpace(in)
}
