package parse

import (
	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/source"
)

// pUnaryOperator parses `-` or `!` immediately followed (no
// intervening whitespace) by a basic_expression.
func pUnaryOperator(p *Parser, ctx context, in source.Span) (ast.Expression, source.Span, bool) {
	var op ast.UnaryOperator
	switch {
	case in.HasPrefix("-"):
		op = ast.Negative
	case in.HasPrefix("!"):
		op = ast.Not
	default:
		p.fail(in.Pos(), "expected unary operator")
		return nil, in, false
	}
	rest := in.Slice(1, in.Len())
	operand, rest, ok := pBasicExpression(p, ctx, rest)
	if !ok {
		return nil, in, false
	}
	span := in.Take(in.Len() - rest.Len())
	return ast.NewUnaryOpExpr(span, op, operand), rest, true
}

// pBasicExpression is the highest-binding alternation: parens, unary
// operator, identifier, integer, string, boolean, list, record (or
// record-update), tag.
func pBasicExpression(p *Parser, ctx context, in source.Span) (ast.Expression, source.Span, bool) {
	if in.HasPrefix("(") {
		if fn, rest, ok := pFunction(p, ctx, in); ok {
			return fn, rest, true
		}
		return pParentheses(p, ctx, in)
	}
	if in.HasPrefix("-") || in.HasPrefix("!") {
		return pUnaryOperator(p, ctx, in)
	}
	if b, rest, ok := pBoolean(p, in); ok {
		return b, rest, true
	}
	if id, rest, ok := pIdentifier(p, in); ok {
		return id, rest, true
	}
	if n, rest, ok := pInteger(p, in); ok {
		return n, rest, true
	}
	if s, rest, ok := pStringLiteral(p, in); ok {
		return s, rest, true
	}
	if in.HasPrefix("[") {
		return pList(p, ctx, in)
	}
	if in.HasPrefix("{") {
		return pRecordOrUpdate(p, ctx, in)
	}
	if in.HasPrefix("#") {
		return pTag(p, ctx, in)
	}
	p.fail(in.Pos(), "expected expression")
	return nil, in, false
}

// binaryLevel is one precedence tier: the set of operator symbols
// recognized at that tier and the next-higher-precedence parser to
// call for each operand.
type binaryLevel struct {
	operators []string
	next      func(p *Parser, ctx context, in source.Span) (ast.Expression, source.Span, bool)
}

func pMultiplicative(p *Parser, ctx context, in source.Span) (ast.Expression, source.Span, bool) {
	return parseBinaryLevel(p, ctx, in, binaryLevel{[]string{"*", "/"}, pBasicExpression})
}

func pAdditive(p *Parser, ctx context, in source.Span) (ast.Expression, source.Span, bool) {
	return parseBinaryLevel(p, ctx, in, binaryLevel{[]string{"+", "-"}, pMultiplicative})
}

func pComparison(p *Parser, ctx context, in source.Span) (ast.Expression, source.Span, bool) {
	return parseBinaryLevel(p, ctx, in, binaryLevel{[]string{"==", "!=", "<=", ">=", "<", ">"}, pAdditive})
}

func pLogicalAnd(p *Parser, ctx context, in source.Span) (ast.Expression, source.Span, bool) {
	return parseBinaryLevel(p, ctx, in, binaryLevel{[]string{"and"}, pComparison})
}

func pLogicalOr(p *Parser, ctx context, in source.Span) (ast.Expression, source.Span, bool) {
	return parseBinaryLevel(p, ctx, in, binaryLevel{[]string{"or"}, pLogicalAnd})
}

// pBinaryOperatorExpression is the entry point for the whole
// left-associative precedence chain.
func pBinaryOperatorExpression(p *Parser, ctx context, in source.Span) (ast.Expression, source.Span, bool) {
	return pLogicalOr(p, ctx, in)
}

func parseBinaryLevel(p *Parser, ctx context, in source.Span, level binaryLevel) (ast.Expression, source.Span, bool) {
	left, rest, ok := level.next(p, ctx, in)
	if !ok {
		return nil, in, false
	}
	for {
		afterWS := skipIntraExpressionWhitespace(ctx, rest)
		op, afterOp, matched := matchOperator(afterWS, level.operators)
		if !matched {
			return left, rest, true
		}
		afterOp = skipIntraExpressionWhitespace(ctx, afterOp)
		right, next, ok := level.next(p, ctx, afterOp)
		if !ok {
			p.fail(afterOp.Pos(), "expected operand after '"+op+"'")
			return nil, in, false
		}
		span := in.Take(in.Len() - next.Len())
		left = ast.NewBinaryOpExpr(span, op, left, right)
		rest = next
	}
}

// skipIntraExpressionWhitespace skips inline whitespace always, and
// newlines/comments only when ctx allows them (spec.md §4.1: multi-line
// binary operator chains are only legal inside bracketed contexts).
func skipIntraExpressionWhitespace(ctx context, in source.Span) source.Span {
	return skipTrivia(ctx, in)
}

// matchOperator tries each candidate operator symbol at in's start,
// longest first so `==`/`<=`/`>=`/`!=` win over a bare `<`/`>`.
func matchOperator(in source.Span, candidates []string) (op string, rest source.Span, ok bool) {
	for _, c := range candidates {
		if !in.HasPrefix(c) {
			continue
		}
		if isWordOperator(c) && followsIdentTail(in, len(c)) {
			continue
		}
		return c, in.Slice(len(c), in.Len()), true
	}
	return "", in, false
}

func isWordOperator(op string) bool {
	return op == "and" || op == "or"
}
