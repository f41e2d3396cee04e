// Package parse implements buric's hand-written grammar-combinator
// parser: a set of small functions, each taking a [source.Span] and a
// [context] and returning a parsed node plus the unconsumed remainder,
// mirroring the shape of the original Buri parser's combinators
// (parser/src/*.rs) rather than a generated or table-driven design.
//
// There is no error recovery. Every combinator that fails reports its
// position to the shared [Parser.fail] tracker, and the single
// furthest-reached failure position becomes the diagnostic if the
// overall parse does not succeed.
package parse

import (
	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/diag"
	"github.com/burilang/buric/internal/source"
)

// Parser tracks the furthest-failure position across an entire parse
// attempt. Unlike context, it is not threaded by value: it is shared
// mutable bookkeeping for diagnostics only, never parse state.
type Parser struct {
	farthest    source.Position
	farthestMsg string
	sawFailure  bool
}

func newParser() *Parser {
	return &Parser{}
}

// fail records a failed expectation at pos if it is at or beyond the
// furthest failure seen so far.
func (p *Parser) fail(pos source.Position, msg string) {
	if !p.sawFailure || pos.Offset >= p.farthest.Offset {
		p.farthest = pos
		p.farthestMsg = msg
		p.sawFailure = true
	}
}

func (p *Parser) diagnostic() *diag.Diagnostic {
	msg := p.farthestMsg
	if msg == "" {
		msg = "unexpected end of input"
	}
	return diag.New(diag.Parse, p.farthest, msg)
}

// Document parses a complete buric source file into an AST document.
// On failure it returns the diagnostic describing the furthest point
// the parser reached.
func Document(text string) (*ast.Document, *diag.Diagnostic) {
	p := newParser()
	in := source.New(text)
	doc, rest, ok := pDocument(p, in)
	if !ok {
		return nil, p.diagnostic()
	}
	rest = skipTrivia(newContext().allowNewlinesInExpressions(), rest)
	if !rest.IsEmpty() {
		p.fail(rest.Pos(), "unexpected trailing input")
		return nil, p.diagnostic()
	}
	return doc, nil
}

// --- low-level primitives -------------------------------------------------

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLowerStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z')
}

func isUpperStart(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isIdentTail(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isDigit(r)
}

// skipInlineSpace consumes a run of spaces and tabs only, never
// newlines, regardless of context.
func skipInlineSpace(in source.Span) source.Span {
	i := 0
	for i < len(in.Text) {
		c := in.Text[i]
		if c != ' ' && c != '\t' {
			break
		}
		i++
	}
	return in.Slice(i, in.Len())
}

// skipLineComment consumes a line comment, which runs from `--` up to
// (not including) the next line ending or to end of input. `#` is
// reserved for tags, so it never starts a comment.
func skipLineComment(in source.Span) (source.Span, bool) {
	if !in.HasPrefix("--") {
		return in, false
	}
	idx := in.Index("\n")
	if idx < 0 {
		return in.Slice(in.Len(), in.Len()), true
	}
	return in.Slice(idx, in.Len()), true
}

// skipTrivia consumes whitespace and comments. When ctx.allowNewlines
// is false, only inline (same-line) whitespace and a single trailing
// line comment are consumed; the newline itself is left for the
// caller, since it is a significant statement separator. When true,
// newlines, blank lines, and comments are all consumed freely.
func skipTrivia(ctx context, in source.Span) source.Span {
	for {
		before := in
		in = skipInlineSpace(in)
		if rest, ok := skipLineComment(in); ok {
			in = rest
		}
		if ctx.allowNewlines {
			for len(in.Text) > 0 && (in.Text[0] == '\n' || in.Text[0] == '\r') {
				in = in.Slice(1, in.Len())
			}
		}
		if in.Offset == before.Offset {
			return in
		}
	}
}

// expectLiteral consumes lit verbatim from in, or fails.
func expectLiteral(p *Parser, in source.Span, lit string) (source.Span, bool) {
	if in.HasPrefix(lit) {
		return in.Slice(len(lit), in.Len()), true
	}
	p.fail(in.Pos(), "expected '"+lit+"'")
	return in, false
}

var keywords = map[string]bool{
	"if": true, "do": true, "else": true, "and": true, "or": true,
	"when": true, "is": true, "import": true, "from": true, "export": true,
	"true": true, "false": true,
}

func isKeyword(s string) bool {
	return keywords[s]
}

// scanWhile consumes the longest prefix of in's text satisfying pred,
// rune by rune, and returns the consumed text and the rest.
func scanWhile(in source.Span, pred func(rune) bool) (text string, rest source.Span) {
	i := 0
	for i < len(in.Text) {
		r, w := source.New(in.Text[i:]).FirstRune()
		if !pred(r) {
			break
		}
		i += w
	}
	return in.Text[:i], in.Slice(i, in.Len())
}
